// Package mealbook provides a client engine for a meal-booking service: bearer-token
// authentication with durable session persistence, holiday-aware booking submission,
// and a best-effort notification follow-up.
//
// The package is designed for embedding in long-lived clients: Client methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// mealbook is the public surface. It exposes [Client], [Builder], [Config], and value
// types (SessionInfo, BookingResult, AuditEvent, etc.). All internal coordination —
// flow orchestration, HTTP transport, request stamping — lives under internal/ and is
// never exported. Session storage backends live in the session sub-package so callers
// can substitute their own persistence.
//
// # What this package must NOT do
//
//   - Expose the HTTP client, raw request bodies, or endpoint paths in its public API.
//   - Retry failed requests; every operation performs at most one call per endpoint.
//   - Roll back a confirmed booking when the follow-up notification fails.
//
// # Session contract
//
// The Client holds exactly one Session. It is authenticated if and only if all four
// identity fields (token, user ID, email, display name) are populated; the four fields
// are persisted together on login, erased together on logout, and restored only when
// all four are present in the store.
package mealbook
