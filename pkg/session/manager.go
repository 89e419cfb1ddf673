package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/authcore/pkg/apierror"
	"github.com/dmitrymomot/authcore/pkg/logger"
)

// AuthenticateFunc performs the actual credential exchange for Login and
// returns the authenticated identity plus the provider's account record.
type AuthenticateFunc func(ctx context.Context) (Identity, *AccountInfo, error)

// Option configures a Manager.
type Option func(*Manager)

// WithNavigation supplies the host's routing capability used for the
// invalidate-and-redirect sequence.
func WithNavigation(nav NavigationPort) Option {
	return func(m *Manager) {
		m.nav = nav
	}
}

// WithLoginPath overrides the route redirected to on authentication failure.
func WithLoginPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.loginPath = path
		}
	}
}

// WithLogger sets a custom logger for the manager.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// Manager owns the in-memory identity and the session state machine. All
// mutations happen under one lock: readers observe the state before or
// after a transition, never a partially written identity.
type Manager struct {
	store     Store
	nav       NavigationPort
	loginPath string
	log       *slog.Logger

	mu         sync.Mutex
	state      State
	identity   *Identity
	account    *AccountInfo
	redirected bool
}

// NewManager creates a session manager in the Anonymous state.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		loginPath: "/login",
		log:       logger.Discard(),
		state:     StateAnonymous,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bootstrap restores a previously persisted identity. Runs once at process
// start. A missing document leaves the session Anonymous; a corrupt or
// schema-invalid one is discarded with a warning and the session likewise
// stays Anonymous. Bootstrap never fails: the returned state is the
// restored outcome.
func (m *Manager) Bootstrap(ctx context.Context) State {
	data, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.WarnContext(ctx, "failed to read persisted session", "error", err)
		}
		return m.State()
	}

	var doc PersistedSession
	if err := json.Unmarshal(data, &doc); err != nil {
		m.discardCorrupt(ctx, apierror.CorruptSession(err))
		return m.State()
	}
	if err := doc.Validate(); err != nil {
		m.discardCorrupt(ctx, apierror.CorruptSession(err))
		return m.State()
	}

	if doc.IsAuthenticated {
		m.mu.Lock()
		// Restore is a direct move to Authenticated: the identity was
		// established in a previous process, there is nothing to authenticate.
		m.state = StateAuthenticated
		m.identity = cloneIdentity(doc.Identity)
		m.account = doc.ExternalAccount
		m.mu.Unlock()
	}
	return m.State()
}

func (m *Manager) discardCorrupt(ctx context.Context, cause error) {
	m.log.WarnContext(ctx, "discarding corrupt persisted session", "error", cause)
	if err := m.store.Clear(ctx); err != nil {
		m.log.WarnContext(ctx, "failed to clear corrupt persisted session", "error", err)
	}
}

// Login drives Anonymous -> Authenticating -> Authenticated. The new
// identity is written to persisted storage atomically before it becomes
// visible in memory; on any failure the session returns to Anonymous with
// the error.
func (m *Manager) Login(ctx context.Context, authenticate AuthenticateFunc) (Identity, error) {
	m.mu.Lock()
	if m.state == StateAuthenticated {
		m.mu.Unlock()
		return Identity{}, ErrAlreadyAuthenticated
	}
	if err := m.transition(StateAuthenticating); err != nil {
		m.mu.Unlock()
		return Identity{}, err
	}
	m.mu.Unlock()

	identity, account, err := authenticate(ctx)
	if err != nil {
		m.abortLogin()
		return Identity{}, fmt.Errorf("login: %w", err)
	}

	doc := PersistedSession{
		Identity:        &identity,
		IsAuthenticated: true,
		ExternalAccount: account,
	}
	if err := doc.Validate(); err != nil {
		m.abortLogin()
		return Identity{}, fmt.Errorf("login: invalid identity: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		m.abortLogin()
		return Identity{}, fmt.Errorf("login: encode session: %w", err)
	}
	if err := m.store.Save(ctx, data); err != nil {
		m.abortLogin()
		return Identity{}, fmt.Errorf("login: persist session: %w", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = cloneIdentity(&identity)
	m.account = account
	m.redirected = false // a fresh login starts a fresh navigation
	m.mu.Unlock()

	m.log.InfoContext(ctx, "session authenticated", "user_id", identity.ID)
	return identity, nil
}

func (m *Manager) abortLogin() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.mu.Unlock()
}

// Logout drives Authenticated -> Invalidating -> Anonymous and clears the
// persisted document. Logging out of an anonymous session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	if !m.invalidate() {
		return nil
	}
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: clear persisted session: %w", err)
	}
	m.log.InfoContext(ctx, "session invalidated")
	return nil
}

// HandleUnauthenticated is the side effect of a 401-classified response:
// invalidate the session and redirect to the login route. The whole
// sequence fires at most once per navigation - a second concurrent 401
// finding the session already invalidated and the redirect already issued
// is a no-op.
func (m *Manager) HandleUnauthenticated(ctx context.Context) {
	cleared := m.invalidate()

	m.mu.Lock()
	redirect := false
	if !m.redirected && m.nav != nil && m.nav.CurrentPath() != m.loginPath {
		m.redirected = true
		redirect = true
	}
	m.mu.Unlock()

	if cleared {
		if err := m.store.Clear(ctx); err != nil {
			m.log.WarnContext(ctx, "failed to clear persisted session", "error", err)
		}
	}
	if redirect {
		m.log.InfoContext(ctx, "authentication failure, redirecting to login", "path", m.loginPath)
		m.nav.RedirectTo(m.loginPath)
	}
}

// ResetNavigation marks the start of a new navigation, re-arming the
// once-per-navigation redirect guard. The host calls it on every route
// change.
func (m *Manager) ResetNavigation() {
	m.mu.Lock()
	m.redirected = false
	m.mu.Unlock()
}

// invalidate clears the in-memory identity if the session is currently
// authenticated. Returns true when a transition actually happened.
func (m *Manager) invalidate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated {
		return false
	}
	m.state = StateInvalidating
	m.identity = nil
	m.account = nil
	m.state = StateAnonymous
	return true
}

// State returns the current life-cycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns a copy of the current identity, if authenticated.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.identity == nil {
		return Identity{}, false
	}
	return *cloneIdentity(m.identity), true
}

// ExternalAccount returns the identity provider's account record, if any.
func (m *Manager) ExternalAccount() (AccountInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return AccountInfo{}, false
	}
	return *m.account, true
}

// cloneIdentity deep-copies an identity so callers never share the
// manager's backing slice.
func cloneIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	out := *id
	if id.Roles != nil {
		out.Roles = make([]string, len(id.Roles))
		copy(out.Roles, id.Roles)
	}
	return &out
}
