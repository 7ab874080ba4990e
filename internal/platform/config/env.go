// Package config holds shared configuration helpers for CollabHub
// binaries. Settings come from COLLABHUB_-prefixed environment variables
// parsed into tagged structs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
