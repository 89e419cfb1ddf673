// Package client is the authenticated request pipeline: every outgoing API
// call is decorated with content negotiation, a bearer credential and an
// anti-forgery token before dispatch, and every response is normalized into
// the uniform apierror taxonomy on the way back.
//
// Credential acquisition and CSRF extraction are independent and run
// concurrently; dispatch waits for both to settle. The cookie jar is always
// attached to the underlying transport, so cookies travel with every
// request. The pipeline performs no retries and imposes no timeout beyond
// what the supplied http.Client provides.
//
// On a response classified as Unauthenticated the pipeline notifies the
// configured AuthFailureHandler - typically the session manager, which
// invalidates the persisted session and redirects to the login route at
// most once per navigation. A 403 never triggers that side effect.
//
// # Usage
//
//	api, err := client.New(cfg, provider,
//	    client.WithAuthFailureHandler(sessionManager),
//	    client.WithLogger(log),
//	)
//
//	payload, err := api.Get(ctx, "/projects")
//	projects, err := client.Decode[[]Project](payload)
package client
