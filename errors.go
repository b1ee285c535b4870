package mealbook

import "errors"

var (
	// ErrLoginFailed is an exported constant or variable used by the booking client.
	ErrLoginFailed = errors.New("login failed")
	// ErrRegistrationFailed is an exported constant or variable used by the booking client.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrNotAuthenticated is an exported constant or variable used by the booking client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrHolidayDate is an exported constant or variable used by the booking client.
	ErrHolidayDate = errors.New("start date is a public holiday")
	// ErrUnauthorized is an exported constant or variable used by the booking client.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBookingFailed is an exported constant or variable used by the booking client.
	ErrBookingFailed = errors.New("booking failed")
	// ErrNotificationFailed is an exported constant or variable used by the booking client.
	ErrNotificationFailed = errors.New("notification failed")
	// ErrSessionStoreUnavailable is an exported constant or variable used by the booking client.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
	// ErrTokenInvalid is an exported constant or variable used by the booking client.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrClientNotReady is an exported constant or variable used by the booking client.
	ErrClientNotReady = errors.New("client not initialized")
)
