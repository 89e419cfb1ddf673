package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	loadOnce  sync.Once
	loaded    Config
	loadErr   error
	dotenvOne sync.Once
)

// Load resolves configuration from the process environment exactly once per
// process. The first call attempts to load a default .env file, parses and
// validates the environment, and caches the result; every subsequent call
// returns the same immutable value. A process restart is the only way to
// re-resolve.
func Load() (Config, error) {
	dotenvOne.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	loadOnce.Do(func() {
		var cfg Config
		if err := env.Parse(&cfg); err != nil {
			loadErr = errors.Join(ErrParsingEnv, err)
			return
		}

		cfg = applyOverrides(cfg)

		if err := cfg.Validate(); err != nil {
			loadErr = err
			return
		}
		loaded = cfg
	})

	return loaded, loadErr
}

// MustLoad works like Load but panics if configuration resolution fails.
// Partial configuration must never reach the pipeline, so startup aborts.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
