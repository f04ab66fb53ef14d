// Package roles declares and implements storage of roles and the
// user_roles association.
package roles

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	// FindByName returns common.ErrNotFound when no role has that name.
	FindByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, name string) (*models.Role, error)
	// AssignToUser links a user to a role. Assigning an existing link is a no-op.
	AssignToUser(ctx context.Context, userID, roleID int64) error
	ListForUser(ctx context.Context, userID int64) ([]*models.Role, error)
}
