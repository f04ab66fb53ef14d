package users

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

const columns = `id, username, email, password, profile_picture, is_admin, created_at, updated_at`

// PostgresRepository stores users over dbx.DBTX.
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

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.ProfilePicture, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// translate maps constraint violations to domain errors and wraps the rest.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.NotFound("User not found")
	}
	c := dbx.Constraint(err)
	if c == nil {
		return fmt.Errorf("db error: %w", err)
	}
	switch c.Violation {
	case dbx.UniqueViolation:
		if c.Constraint == "users_email_key" {
			return common.Conflict("Email is already in use")
		}
		return common.Conflict("Username is already taken")
	case dbx.NotNullViolation:
		return common.Validation("%s is required", c.Column)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

// Create inserts the user. The password must already be a digest.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	picture := user.ProfilePicture
	if picture == "" {
		picture = common.DefaultProfilePicture
	}

	query :=
		`INSERT INTO users (username, email, password, profile_picture, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + columns

	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.Password, picture, user.IsAdmin))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// GetByID returns common.ErrNotFound when no user has the id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// GetByEmail returns common.ErrNotFound when no user has the email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Update writes only the fields set in patch and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("username", patch.UserName)
	add("email", patch.Email)
	add("profile_picture", patch.ProfilePicture)
	add("password", patch.Password)
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), columns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Delete removes the user. Dependent rows go with it through FK cascades.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.NotFound("User not found")
	}
	return nil
}

// List returns one page of users ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, p models.Pagination) ([]*models.User, error) {
	p = p.Normalize()
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at %s, id %s OFFSET $1 LIMIT $2`,
		columns, p.Direction(), p.Direction())

	rows, err := r.db.QueryContext(ctx, query, p.StartIndex, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Count returns the total number of users.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// CountCreatedSince counts users created at or after since.
func (r *PostgresRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
