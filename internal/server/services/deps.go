// Package services contains the server-side operations. Each operation runs
// against the shared store under a timeout, checks the authorization policy
// and returns either a domain error (common.Error) or common.ErrInternal.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
)

// Deps are the collaborators shared by all services. Nil Policy, Hasher,
// Logger and Now fall back to policy.Default, bcrypt, a no-op logger and
// time.Now.
type Deps struct {
	DB     *sql.DB
	Repos  repomanager.RepositoryManager
	Config *config.Config
	Policy policy.Policy
	Hasher Hasher
	Logger logging.Logger
	Now    func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Policy == nil {
		d.Policy = policy.Default{}
	}
	if d.Hasher == nil {
		d.Hasher = BcryptHasher{}
	}
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// passThrough lists the errors returned to callers unchanged.
var passThrough = []error{
	common.ErrUnauthorized,
	common.ErrInvalidToken,
	common.ErrTokenExpired,
	common.ErrRefreshTokenExpired,
}

// run executes fn under the store timeout. Failures that are not domain
// errors are logged with full detail and replaced by common.ErrInternal.
func (d Deps) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	timeout := 5 * time.Second
	if d.Config != nil && d.Config.StoreTimeout > 0 {
		timeout = d.Config.StoreTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := fn(ctx)
	if err == nil || common.IsDomain(err) {
		return err
	}
	for _, e := range passThrough {
		if errors.Is(err, e) {
			return err
		}
	}

	d.Logger.Error(ctx, "operation failed", "op", op, "error", err)
	return common.ErrInternal
}
