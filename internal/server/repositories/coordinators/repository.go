// Package coordinators declares and implements storage of the
// event_coordinators association.
package coordinators

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	// Add fails with common.ErrConflict when the link exists and with
	// common.ErrNotFound when either side is missing.
	Add(ctx context.Context, eventID, userID int64) error
	Remove(ctx context.Context, eventID, userID int64) error
	IsCoordinator(ctx context.Context, eventID, userID int64) (bool, error)
	ListForEvent(ctx context.Context, eventID int64) ([]models.Account, error)
}
