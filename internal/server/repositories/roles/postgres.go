package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

// PostgresRepository stores roles and role assignments over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByName returns common.ErrNotFound when the role does not exist.
func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("Role not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

// Create inserts a role with the given name.
func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, `INSERT INTO roles (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if dbx.IsUniqueViolation(err, "roles_name_key") {
			return nil, common.Conflict("Role already exists")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

// AssignToUser grants roleID to userID. Repeated grants are ignored.
func (r *PostgresRepository) AssignToUser(ctx context.Context, userID, roleID int64) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, roleID); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.NotFound("User or role not found")
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListForUser returns the roles held by userID.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
