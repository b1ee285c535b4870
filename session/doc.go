// Package session holds the client-side session model and the durable key-value
// store abstraction it is persisted through.
//
// # Design
//
// A session is four string fields (token, user ID, email, display name) written
// under a fixed key set. The store contract is deliberately narrow — get, set,
// delete for known keys — so any persistence backend can be substituted. The
// package ships memory, file, and Redis backends.
//
// # Architecture boundaries
//
// This package owns persistence and the all-or-nothing restore rule. It performs
// no network calls to the booking service and never imports the root package.
package session
