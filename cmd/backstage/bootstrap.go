package main

import (
	"context"
	"fmt"

	"backstage/internal/config"
	"backstage/internal/logging"
)

type adminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// bootstrapAdmin creates the configured admin account when it is missing.
func bootstrapAdmin(ctx context.Context, cfg config.AdminConfig, admins adminEnsurer, logger *logging.Logger) error {
	if !cfg.Enabled() {
		return nil
	}

	created, err := admins.EnsureAdmin(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return fmt.Errorf("bootstrap admin %q: %w", cfg.Username, err)
	}
	if created {
		logger.Zerolog().Info().Str("username", cfg.Username).Msg("bootstrap admin created")
	}
	return nil
}
