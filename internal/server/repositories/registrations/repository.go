// Package registrations declares and implements storage of event
// registrations, the association between users and the events they attend.
package registrations

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	// Create fails with common.ErrConflict when the user is already registered.
	Create(ctx context.Context, userID, eventID int64) (*models.Registration, error)
	Delete(ctx context.Context, userID, eventID int64) error
	CountForEvent(ctx context.Context, eventID int64) (int, error)
	ListRegistrants(ctx context.Context, eventID int64) ([]models.Registrant, error)
}
