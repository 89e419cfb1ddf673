// Package credential supplies bearer credentials for outgoing API requests
// through a pluggable Provider interface.
//
// Two interchangeable back-ends exist. MockProvider returns a fixed
// development token synchronously and is the default in local development.
// EnterpriseProvider wraps the identity provider's OAuth2 endpoints: it
// first attempts a silent refresh from the cached session and falls back to
// an interactive flow supplied by the host only when silent renewal fails.
//
// Acquisition degrades gracefully: when no credential can be produced the
// provider returns (nil, nil) rather than an error, the request goes out
// without an Authorization header, and the server's uniform 401 rejection is
// classified downstream. A credential outage therefore never crashes the
// caller.
//
// Exactly one Provider instance is constructed at process start from the
// resolved configuration and owned explicitly by the process-wide context -
// there is no ambient singleton to import.
//
// # Usage
//
//	provider := credential.NewFromConfig(cfg,
//	    credential.WithLogger(log),
//	    credential.WithInteractiveFlow(hostLoginPopup),
//	)
//	cred, err := provider.Acquire(ctx)
package credential
