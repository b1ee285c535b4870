// Package flows orchestrates the client's session and booking operations behind
// dependency structs. The root engine builds the dependency sets once at Build
// and delegates each public method to the matching flow implementation; the
// package itself holds no state and never imports the root package.
package flows

// Deps groups flow dependency sets. Root engine builds this once and delegates
// request methods to the matching flow implementation.
type Deps struct {
	Login   LoginDeps
	Logout  LogoutDeps
	Restore RestoreDeps
	Booking BookingDeps
}
