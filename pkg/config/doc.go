// Package config resolves process environment into a typed, validated,
// immutable configuration for the authenticated request pipeline.
//
// It wraps `github.com/caarlos0/env/v11` for struct-tag based parsing and
// `github.com/joho/godotenv` for optional `.env` file loading. Validation is
// aggregated: a single resolve pass reports every invalid or missing field at
// once, so an operator can fix the whole environment in one go instead of
// replaying the process once per mistake.
//
// Configuration is resolved exactly once per process through Load; the only
// way to change it is a restart. Resolve is the pure variant used by tests
// and hosts that manage their own environment source.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    for _, field := range validator.ExtractValidationErrors(err).Fields() {
//	        log.Println("invalid:", field)
//	    }
//	    os.Exit(1)
//	}
package config
