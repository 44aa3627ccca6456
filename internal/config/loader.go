package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that steer loading itself.
const (
	envPrefix  = "LINEUP_"
	envConfig  = "LINEUP_CONFIG"
	envDotFile = "LINEUP_ENV_FILE"

	defaultDotFile = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LINEUP_CONFIG is set
//  3. env (prefix LINEUP_), where a .env file (LINEUP_ENV_FILE, default
//     ./.env) fills in variables the process environment does not set
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Map env keys like LINEUP_SKILL_THRESHOLD -> skill_threshold (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv exports variables from the .env file without overriding ones
// already set. A missing default file is not an error; a missing file named
// explicitly is.
func loadDotEnv() error {
	path, explicit := os.LookupEnv(envDotFile)
	if !explicit || path == "" {
		path = defaultDotFile
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
