// Package users declares and implements storage of user accounts.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update writes only the non-nil fields of patch and returns the updated row.
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	// Delete removes the user; the store cascades to every dependent row.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p models.Pagination) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
