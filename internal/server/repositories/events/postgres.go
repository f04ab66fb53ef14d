package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

const columns = `id, user_id, title, content, image, category, location, datetime, max_registration, slug, created_at, updated_at`

// PostgresRepository stores events over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Image, &e.Category, &e.Location,
		&e.Datetime, &e.MaxRegistration, &e.Slug, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.NotFound("Event not found")
	}
	c := dbx.Constraint(err)
	if c == nil {
		return fmt.Errorf("db error: %w", err)
	}
	switch c.Violation {
	case dbx.UniqueViolation:
		if c.Constraint == "events_slug_key" {
			return common.Conflict("An event with this slug already exists")
		}
		return common.Conflict("An event with this title already exists")
	case dbx.CheckViolation:
		return common.Validation("Maximum registration must be greater than 0")
	case dbx.ForeignKeyViolation:
		return common.NotFound("User not found")
	case dbx.NotNullViolation:
		return common.Validation("%s is required", c.Column)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

// Create inserts the event and returns it with generated fields filled in.
func (r *PostgresRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	image := event.Image
	if image == "" {
		image = common.DefaultEventImage
	}
	category := event.Category
	if category == "" {
		category = common.DefaultEventCategory
	}

	query :=
		`INSERT INTO events (user_id, title, content, image, category, location, datetime, max_registration, slug)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING ` + columns

	e, err := scanEvent(r.db.QueryRowContext(ctx, query,
		event.UserID, event.Title, event.Content, image, category, event.Location,
		event.Datetime, event.MaxRegistration, event.Slug))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// GetByID returns common.ErrNotFound when no event has the id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// GetBySlug returns common.ErrNotFound when no event has the slug.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM events WHERE slug = $1`, slug))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Update writes only the fields set in patch and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 9)

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Datetime != nil {
		add("datetime", *patch.Datetime)
	}
	if patch.MaxRegistration != nil {
		add("max_registration", *patch.MaxRegistration)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), columns)

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Delete removes the event together with its registrations and coordinators.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.NotFound("Event not found")
	}
	return nil
}

// where renders the filter as a WHERE clause with positional arguments.
func where(f models.EventFilter) (string, []any) {
	var conds []string
	var args []any

	if f.UserID != 0 {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Slug != "" {
		args = append(args, f.Slug)
		conds = append(conds, fmt.Sprintf("slug = $%d", len(args)))
	}
	if f.SearchTerm != "" {
		args = append(args, "%"+f.SearchTerm+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of events matching the filter.
func (r *PostgresRepository) List(ctx context.Context, f models.EventFilter) ([]*models.Event, error) {
	p := f.Pagination.Normalize()
	cond, args := where(f)

	args = append(args, p.StartIndex, p.Limit)
	query := fmt.Sprintf(`SELECT %s FROM events%s ORDER BY created_at %s, id %s OFFSET $%d LIMIT $%d`,
		columns, cond, p.Direction(), p.Direction(), len(args)-1, len(args))

	return r.query(ctx, query, args...)
}

// Count returns the number of events matching the filter, ignoring pagination.
func (r *PostgresRepository) Count(ctx context.Context, f models.EventFilter) (int64, error) {
	cond, args := where(f)

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+cond, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// CountCreatedSince counts events created at or after since.
func (r *PostgresRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// LockForRegistration locks the event row until the surrounding transaction
// ends and returns its capacity. Must run inside a transaction.
func (r *PostgresRepository) LockForRegistration(ctx context.Context, id int64) (int, error) {
	var capacity int
	err := r.db.QueryRowContext(ctx, `SELECT max_registration FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&capacity)
	if err != nil {
		return 0, translate(err)
	}
	return capacity, nil
}

// ListByRegistrant returns the events userID is registered for.
func (r *PostgresRepository) ListByRegistrant(ctx context.Context, userID int64) ([]*models.Event, error) {
	query := `
		SELECT e.id, e.user_id, e.title, e.content, e.image, e.category, e.location, e.datetime,
		       e.max_registration, e.slug, e.created_at, e.updated_at
		FROM events e
		JOIN registrations r ON r.event_id = e.id
		WHERE r.user_id = $1
		ORDER BY e.datetime
	`
	return r.query(ctx, query, userID)
}

// ListByCoordinator returns the events userID coordinates.
func (r *PostgresRepository) ListByCoordinator(ctx context.Context, userID int64) ([]*models.Event, error) {
	query := `
		SELECT e.id, e.user_id, e.title, e.content, e.image, e.category, e.location, e.datetime,
		       e.max_registration, e.slug, e.created_at, e.updated_at
		FROM events e
		JOIN event_coordinators c ON c.event_id = e.id
		WHERE c.user_id = $1
		ORDER BY e.datetime
	`
	return r.query(ctx, query, userID)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
