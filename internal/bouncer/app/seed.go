package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/bouncer/internal/bouncer/domain"
	"github.com/aussiebroadwan/bouncer/internal/bouncer/service"
)

// demoUsers are the accounts seeded for local development and demos. Never
// enable seeding in production; the passwords are the documentation.
var demoUsers = []struct {
	username string
	password string
	roles    domain.Roles
	active   bool
}{
	{"admin", "password", domain.Roles{domain.RoleAdmin, domain.RoleUser}, true},
	{"user", "password", domain.Roles{domain.RoleUser}, true},
	{"disabled", "password", domain.Roles{domain.RoleUser}, false},
}

// SeedDemoUsers provisions the demo accounts into an empty store. A store
// with any existing account is left untouched.
func SeedDemoUsers(ctx context.Context, users *service.UserService, logger *slog.Logger) error {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users before seeding: %w", err)
	}
	if count > 0 {
		logger.Info("store already has accounts, skipping demo seed", "count", count)
		return nil
	}

	for _, u := range demoUsers {
		created, err := users.CreateUser(ctx, u.username, u.password, u.roles, u.active)
		if err != nil {
			return fmt.Errorf("failed to seed demo user %q: %w", u.username, err)
		}
		logger.Info("seeded demo user",
			"username", created.Username,
			"roles", created.Roles.Strings(),
			"active", created.Active,
		)
	}

	logger.Warn("demo accounts seeded with well-known passwords, do not use in production")
	return nil
}
