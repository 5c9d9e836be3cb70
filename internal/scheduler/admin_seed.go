package scheduler

import (
	"context"
	"errors"
	"io/fs"

	"github.com/MrSnakeDoc/banho/internal/admin"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/static"
)

const adminUsersFile = "admin_users.json"

// AdminSeeder fills an empty user list from the bundled seed on startup.
type AdminSeeder struct {
	users  *admin.Service
	loader *static.Loader
	logger logger.Logger
}

func NewAdminSeeder(users *admin.Service, loader *static.Loader, log logger.Logger) *AdminSeeder {
	return &AdminSeeder{users: users, loader: loader, logger: log}
}

// Sync seeds the users unless some are already stored.
func (as *AdminSeeder) Sync(ctx context.Context) error {
	raw, err := as.loader.Raw(adminUsersFile)
	if errors.Is(err, fs.ErrNotExist) {
		as.logger.Info("no admin users seed found")
		return nil
	}
	if err != nil {
		return err
	}

	seeded, err := as.users.SeedIfEmpty(ctx, raw)
	if err != nil {
		return err
	}
	if !seeded {
		as.logger.Debug("admin users already present, seed skipped")
	}
	return nil
}
