package session

import "errors"

// Package-specific errors
var (
	// ErrNotFound is returned by a Store when no session document exists.
	ErrNotFound = errors.New("persisted session not found")

	// ErrInvalidTransition is returned when an operation is attempted from a
	// state it is not legal in.
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrAlreadyAuthenticated is returned by Login when a session is active.
	ErrAlreadyAuthenticated = errors.New("session is already authenticated")
)
