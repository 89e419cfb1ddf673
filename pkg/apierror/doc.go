// Package apierror defines the uniform error taxonomy every transport
// outcome is normalized into.
//
// A request can fail in exactly eight ways: Network (no response received),
// Unauthenticated (401), Forbidden (403), Validation (400/422 with optional
// field messages), ServerFault (5xx), Unknown (any other status), Config
// (aggregated startup validation) and CorruptSession (unreadable persisted
// state, recovered at bootstrap). Callers branch on the Kind with errors.Is
// against the package sentinels instead of inspecting raw status codes.
//
// # Usage
//
//	payload, err := client.Get(ctx, "/projects")
//	if errors.Is(err, apierror.ErrForbidden) {
//	    // authenticated but not allowed; session stays intact
//	}
package apierror
