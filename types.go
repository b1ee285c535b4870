package mealbook

import (
	"encoding/json"

	"github.com/feastline/mealbook/booking"
)

// SessionInfo is a point-in-time snapshot of the client's session. It is
// returned by value; mutating it has no effect on the client.
type SessionInfo struct {
	Authenticated bool

	Token       string
	UserID      string
	Email       string
	DisplayName string

	// CreatedAt is when this session was established locally (login or
	// restore), as a Unix timestamp. TokenExpiresAt is the unverified exp
	// claim of the bearer token, 0 when the token carries none.
	CreatedAt      int64
	TokenExpiresAt int64
}

// LoginResult carries the identity fields returned by a successful login.
type LoginResult struct {
	Token       string
	UserID      string
	Email       string
	DisplayName string
}

// BookingConfirmation is the parsed response of a successful booking call.
// Raw preserves the full body for fields this client does not model.
type BookingConfirmation struct {
	BookingID string
	Status    string
	Message   string
	Raw       json.RawMessage
}

// BookingResult is returned by [Client.SubmitBooking]. NotificationErr reports
// the best-effort follow-up notification independently: a non-nil value never
// invalidates the confirmed booking.
type BookingResult struct {
	Confirmation BookingConfirmation

	StartDate string
	EndDate   string
	Days      int

	NotificationErr error
}

// NewDraft opens a fresh booking draft. Convenience re-export of
// [booking.NewDraft].
func NewDraft() *booking.Draft {
	return booking.NewDraft()
}
