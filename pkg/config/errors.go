package config

import "errors"

// Package-specific errors
var (
	// ErrParsingEnv is returned when environment variables cannot be parsed
	// into the config struct at all (malformed values for typed fields).
	ErrParsingEnv = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when the parsed configuration fails
	// validation. It always wraps a validator.ValidationErrors listing every
	// invalid field.
	ErrInvalidConfig = errors.New("invalid configuration")
)
