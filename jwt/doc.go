// Package jwt decodes the bearer token issued at login.
//
// The client never verifies signatures — the token is an opaque credential owned
// by the backend — but its claims carry useful metadata (subject, display name,
// email, expiry) that the engine surfaces for session introspection. Decoding is
// therefore deliberately unverified and must never be used for authorization
// decisions.
package jwt
