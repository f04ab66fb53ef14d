package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/eventhub/internal/flagx"
	"github.com/joho/godotenv"
)

// defaultEnvFile is loaded when present; a missing file is not an error.
const defaultEnvFile = ".env"

// parseEnv seeds the process environment from a dotenv file (the one named
// by -envfile, or ./.env when it exists) and then overlays every variable
// named in Config's env tags. Variables already set in the environment win
// over the dotenv file.
func parseEnv(config *Config, args []string) error {
	if path := flagx.EnvFile(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
