package registrations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

// PostgresRepository stores event registrations over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func translate(err error) error {
	c := dbx.Constraint(err)
	if c == nil {
		return fmt.Errorf("db error: %w", err)
	}
	switch c.Violation {
	case dbx.UniqueViolation:
		if c.Constraint == "registrations_user_id_event_id_key" {
			return common.Conflict("already registered")
		}
	case dbx.ForeignKeyViolation:
		if c.Constraint == "registrations_user_id_fkey" {
			return common.NotFound("User not found")
		}
		return common.NotFound("Event not found")
	}
	return fmt.Errorf("db error: %w", err)
}

// Create registers userID for eventID.
func (r *PostgresRepository) Create(ctx context.Context, userID, eventID int64) (*models.Registration, error) {
	query := `
		INSERT INTO registrations (user_id, event_id)
		VALUES ($1, $2)
		RETURNING id, user_id, event_id, registered_at
	`
	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, userID, eventID).
		Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt)
	if err != nil {
		return nil, translate(err)
	}
	return reg, nil
}

// Delete cancels a registration. A missing one yields common.ErrNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, userID, eventID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.NotFound("Registration not found")
	}
	return nil
}

// CountForEvent returns the number of registrations for eventID.
func (r *PostgresRepository) CountForEvent(ctx context.Context, eventID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// ListRegistrants returns sanitized accounts with their registration time.
func (r *PostgresRepository) ListRegistrants(ctx context.Context, eventID int64) ([]models.Registrant, error) {
	query := `
		SELECT u.id, u.username, u.email, u.profile_picture, u.is_admin, u.created_at, u.updated_at, r.registered_at
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.registered_at
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Registrant{}
	for rows.Next() {
		var reg models.Registrant
		a := &reg.Account
		if err := rows.Scan(&a.ID, &a.UserName, &a.Email, &a.ProfilePicture, &a.IsAdmin,
			&a.CreatedAt, &a.UpdatedAt, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
