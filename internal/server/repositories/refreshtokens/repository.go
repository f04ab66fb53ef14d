// Package refreshtokens declares the server-side repository contract for
// refresh tokens, the session credential cleared by sign-out.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error

	// Find returns common.ErrNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a single token. It returns common.ErrNotFound when the
	// token was already gone.
	Delete(ctx context.Context, token string) error

	// DeleteForUser removes every token of the user.
	DeleteForUser(ctx context.Context, userID int64) error
}
