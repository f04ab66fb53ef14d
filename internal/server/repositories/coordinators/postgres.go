package coordinators

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

// PostgresRepository stores event coordinator links over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add links userID as a coordinator of eventID.
func (r *PostgresRepository) Add(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO event_coordinators (event_id, user_id) VALUES ($1, $2)`, eventID, userID)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err, ""):
			return common.Conflict("User is already a coordinator of this event")
		case dbx.IsForeignKeyViolation(err):
			if c := dbx.Constraint(err); c.Constraint == "event_coordinators_event_id_fkey" {
				return common.NotFound("Event not found")
			}
			return common.NotFound("User not found")
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Remove unlinks a coordinator. A missing link yields common.ErrNotFound.
func (r *PostgresRepository) Remove(ctx context.Context, eventID, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_coordinators WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.NotFound("User is not a coordinator of this event")
	}
	return nil
}

// IsCoordinator reports whether userID coordinates eventID.
func (r *PostgresRepository) IsCoordinator(ctx context.Context, eventID, userID int64) (bool, error) {
	var ok bool
	query := `SELECT EXISTS (SELECT 1 FROM event_coordinators WHERE event_id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

// ListForEvent returns the sanitized accounts coordinating eventID.
func (r *PostgresRepository) ListForEvent(ctx context.Context, eventID int64) ([]models.Account, error) {
	query := `
		SELECT u.id, u.username, u.email, u.profile_picture, u.is_admin, u.created_at, u.updated_at
		FROM event_coordinators c
		JOIN users u ON u.id = c.user_id
		WHERE c.event_id = $1
		ORDER BY u.username
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserName, &a.Email, &a.ProfilePicture, &a.IsAdmin, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
