package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

// AdminUserName is the username of the bootstrapped administrator.
const AdminUserName = "Admin"

// requiredRoles is iterated in this order on every start.
var requiredRoles = []string{common.RoleAdmin, common.RoleUser}

// Bootstrapper prepares the store before the server accepts traffic.
type Bootstrapper struct {
	Deps
}

func NewBootstrapper(d Deps) *Bootstrapper {
	return &Bootstrapper{Deps: d.withDefaults()}
}

// InitializeAdmin ensures the admin and user roles and the configured
// administrator exist. Running it again changes nothing.
func (b *Bootstrapper) InitializeAdmin(ctx context.Context) error {
	if b.Config == nil || b.Config.AdminEmail == "" || b.Config.AdminPassword == "" {
		return config.ErrAdminCredentialsMissing
	}

	roles := make(map[string]*models.Role, len(requiredRoles))
	for _, name := range requiredRoles {
		role, err := b.ensureRole(ctx, name)
		if err != nil {
			return err
		}
		roles[name] = role
	}

	users := b.Repos.Users(b.DB)
	_, err := users.GetByEmail(ctx, b.Config.AdminEmail)
	if err == nil {
		b.Logger.Debug(ctx, "administrator already present")
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	digest, err := b.Hasher.Hash(b.Config.AdminPassword)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, b.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		admin, err := b.Repos.Users(tx).Create(ctx, &models.User{
			UserName: AdminUserName,
			Email:    b.Config.AdminEmail,
			Password: digest,
			IsAdmin:  true,
		})
		if err != nil {
			return err
		}
		return b.Repos.Roles(tx).AssignToUser(ctx, admin.ID, roles[common.RoleAdmin].ID)
	})
	if err != nil {
		return err
	}

	b.Logger.Info(ctx, "administrator created", "email", b.Config.AdminEmail)
	return nil
}

func (b *Bootstrapper) ensureRole(ctx context.Context, name string) (*models.Role, error) {
	repo := b.Repos.Roles(b.DB)

	role, err := repo.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	b.Logger.Info(ctx, "creating role", "role", name)
	return repo.Create(ctx, name)
}
