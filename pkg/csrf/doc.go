// Package csrf reads and validates the anti-forgery token the server plants
// in the cookie store, and names the header it travels back under.
//
// The guard fails open. A missing or policy-violating token is treated as
// absent: the request still goes out without the header and any server-side
// rejection flows through the normal error-classification path. The token is
// read fresh from the cookie store on every request so server-side rotation
// takes effect immediately.
package csrf
