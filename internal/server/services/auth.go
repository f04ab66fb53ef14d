package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/auth"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication-related operations:
//   - SignUp: create a user holding the user role
//   - SignIn: verify credentials and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
type AuthService struct {
	Deps
}

func NewAuthService(d Deps) *AuthService {
	return &AuthService{Deps: d.withDefaults()}
}

// SignUp creates a regular user and links it to the user role in one transaction.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*models.Account, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	var out models.Account
	err := s.run(ctx, "auth.signup", func(ctx context.Context) error {
		digest, err := s.Hasher.Hash(password)
		if err != nil {
			return err
		}

		return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			u, err := s.Repos.Users(tx).Create(ctx, &models.User{UserName: username, Email: email, Password: digest})
			if err != nil {
				return err
			}
			role, err := s.Repos.Roles(tx).FindByName(ctx, common.RoleUser)
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("role %q is not provisioned", common.RoleUser)
			}
			if err != nil {
				return fmt.Errorf("role %q: %w", common.RoleUser, err)
			}
			if err := s.Repos.Roles(tx).AssignToUser(ctx, u.ID, role.ID); err != nil {
				return err
			}
			out = u.Sanitize()
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info(ctx, "account created", "user_id", out.ID)
	return &out, nil
}

// SignIn verifies the credentials and returns a fresh TokenPair together
// with the signed-in account. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*TokenPair, *models.Account, error) {
	var (
		pair *TokenPair
		acc  models.Account
	)
	err := s.run(ctx, "auth.signin", func(ctx context.Context) error {
		u, err := s.Repos.Users(s.DB).GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrUnauthorized
			}
			return err
		}
		if !s.Hasher.Compare(u.Password, password) {
			return common.ErrUnauthorized
		}

		pair, err = s.generateTokenPair(ctx, u, s.DB)
		if err != nil {
			return err
		}
		acc = u.Sanitize()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return pair, &acc, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.run(ctx, "auth.refresh", func(ctx context.Context) error {
		repo := s.Repos.RefreshTokens(s.DB)

		token, err := repo.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}

		if token.Expires.Before(s.Now()) {
			if err := repo.Delete(ctx, refreshToken); err != nil && !errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("error deleting refresh token: %w", err)
			}
			return common.ErrRefreshTokenExpired
		}

		return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.Repos.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.ErrInvalidToken
				}
				return fmt.Errorf("error deleting refresh token: %w", err)
			}
			u, err := s.Repos.Users(tx).GetByID(ctx, token.UserID)
			if err != nil {
				return err
			}
			pair, err = s.generateTokenPair(ctx, u, tx)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// --- helpers below ---

func (s *AuthService) generateTokenPair(ctx context.Context, u *models.User, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(u.ID, u.IsAdmin, []byte(s.Config.SecretKey), s.Config.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}
	if err := s.Repos.RefreshTokens(db).Create(ctx, u.ID, refresh, s.Config.RefreshTokenValidityDuration); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
