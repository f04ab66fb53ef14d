package services

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	"github.com/dmitrijs2005/eventhub/internal/timex"
)

// AccountService manages existing accounts: profile updates, deletion,
// listing and sign-out.
type AccountService struct {
	Deps
}

func NewAccountService(d Deps) *AccountService {
	return &AccountService{Deps: d.withDefaults()}
}

// Update writes the supplied fields of the actor's own account. A new
// password is stored as a digest.
func (s *AccountService) Update(ctx context.Context, actor policy.Principal, targetID int64, patch models.UserPatch) (*models.Account, error) {
	if err := s.Policy.CanModifyAccount(actor, targetID).Err(); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		if err := ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
	}
	if patch.UserName != nil {
		if err := ValidateUsername(*patch.UserName); err != nil {
			return nil, err
		}
	}
	if patch.Email != nil {
		if err := ValidateEmail(*patch.Email); err != nil {
			return nil, err
		}
	}

	var out models.Account
	err := s.run(ctx, "account.update", func(ctx context.Context) error {
		if patch.Password != nil {
			digest, err := s.Hasher.Hash(*patch.Password)
			if err != nil {
				return err
			}
			patch.Password = &digest
		}

		u, err := s.Repos.Users(s.DB).Update(ctx, targetID, patch)
		if err != nil {
			return err
		}
		out = u.Sanitize()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info(ctx, "account updated", "user_id", targetID)
	return &out, nil
}

// Delete removes the account together with everything that references it.
func (s *AccountService) Delete(ctx context.Context, actor policy.Principal, targetID int64) error {
	if err := s.Policy.CanDeleteAccount(actor, targetID).Err(); err != nil {
		return err
	}

	err := s.run(ctx, "account.delete", func(ctx context.Context) error {
		return s.Repos.Users(s.DB).Delete(ctx, targetID)
	})
	if err != nil {
		return err
	}

	s.Logger.Info(ctx, "account deleted", "user_id", targetID, "actor_id", actor.ID)
	return nil
}

// List returns one page of accounts with the total count and the number of
// accounts created since the same day last month.
func (s *AccountService) List(ctx context.Context, actor policy.Principal, p models.Pagination) (*models.AccountPage, error) {
	if err := s.Policy.CanListAllAccounts(actor).Err(); err != nil {
		return nil, err
	}
	p = p.Normalize()

	page := &models.AccountPage{}
	err := s.run(ctx, "account.list", func(ctx context.Context) error {
		repo := s.Repos.Users(s.DB)

		list, err := repo.List(ctx, p)
		if err != nil {
			return err
		}
		page.Users = models.SanitizeAll(list)

		if page.TotalUsers, err = repo.Count(ctx); err != nil {
			return err
		}
		page.LastMonthUsers, err = repo.CountCreatedSince(ctx, timex.MonthAgo(s.Now()))
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Get is open to every authenticated caller.
func (s *AccountService) Get(ctx context.Context, targetID int64) (*models.Account, error) {
	var out models.Account
	err := s.run(ctx, "account.get", func(ctx context.Context) error {
		u, err := s.Repos.Users(s.DB).GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		out = u.Sanitize()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut revokes every refresh token of the actor. Access tokens expire on
// their own.
func (s *AccountService) SignOut(ctx context.Context, actor policy.Principal) error {
	return s.run(ctx, "account.signout", func(ctx context.Context) error {
		return s.Repos.RefreshTokens(s.DB).DeleteForUser(ctx, actor.ID)
	})
}
