// Package events declares and implements storage of events.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
	// List returns one page of events matching filter, ordered by creation time.
	List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	// Count ignores the filter's pagination.
	Count(ctx context.Context, filter models.EventFilter) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	// LockForRegistration locks the event row until the surrounding
	// transaction ends and returns its capacity.
	LockForRegistration(ctx context.Context, id int64) (int, error)
	ListByRegistrant(ctx context.Context, userID int64) ([]*models.Event, error)
	ListByCoordinator(ctx context.Context, userID int64) ([]*models.Event, error)
}
