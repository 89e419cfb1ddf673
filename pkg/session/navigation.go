package session

// NavigationPort is the host environment's routing capability. The core
// never touches the browser location directly: it asks the port where the
// user currently is and declaratively requests a redirect. A redirect
// applied after the user has already navigated elsewhere is safe - the port
// is expected to treat it idempotently.
type NavigationPort interface {
	// CurrentPath returns the path of the route currently displayed.
	CurrentPath() string

	// RedirectTo navigates to the given application path.
	RedirectTo(path string)
}
