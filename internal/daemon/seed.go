package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/auth"
	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/uniuri"
)

const defaultAdmin = "admin"

// seed creates the first back-office account when there is none.
// Without a configured password a random one is generated and logged once.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	provider := auth.NewLocalProvider(db)

	count, err := provider.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	username := cfg.Admin.Username
	if username == "" {
		username = defaultAdmin
	}

	password := cfg.Admin.InitialPassword
	generated := password == ""

	if generated {
		password = uniuri.New()
	}

	if _, err = provider.CreateUser(ctx, username, "", password); err != nil {
		return fmt.Errorf("create %s: %w", username, err)
	}

	if generated {
		log.Warn().
			Str("username", username).
			Str("password", password).
			Msg("created the initial admin account, change the password after the first login")
	} else {
		log.Info().Str("username", username).Msg("created the initial admin account")
	}

	return nil
}
