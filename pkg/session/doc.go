// Package session holds the current user identity and drives it through the
// Anonymous -> Authenticating -> Authenticated -> Invalidating -> Anonymous
// life-cycle, persisting every mutation through a pluggable Store.
//
// The package is storage-agnostic: any medium that satisfies the Store
// interface can back the persisted session. A concurrent in-memory
// implementation and an atomic file-based one ship out of the box. The
// persisted document is schema-validated on every read; a corrupt entry is
// discarded with a warning and bootstrap falls back to Anonymous instead of
// failing.
//
// # Architecture
//
// A Manager owns the in-memory Identity and the state machine. All
// mutations happen under one lock, so readers observe either the state
// before or after a transition, never a partially written Identity.
// Redirects after authentication failure go through the host-supplied
// NavigationPort and fire at most once per navigation, no matter how many
// concurrent requests report a 401 at the same moment.
//
// # Usage
//
//	manager := session.NewManager(session.NewFileStore(path),
//	    session.WithNavigation(nav),
//	    session.WithLoginPath(cfg.LoginPath),
//	)
//	_ = manager.Bootstrap(ctx) // restore a previously persisted identity
//
//	identity, err := manager.Login(ctx, authenticateFn)
package session
