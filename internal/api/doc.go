// Package api is the HTTP/JSON transport for the meal-booking backend.
//
// It owns the endpoint paths, the default Authorization header installed at
// login, and per-request X-Request-ID stamping. Status-code policy lives here
// (2xx for auth endpoints, exactly 200 for booking and notification calls);
// translating failures into the public error taxonomy is the engine's job.
//
// This package must never import the root mealbook package.
package api
