package session

// Session defines a public type used by mealbook APIs.
//
// Session instances are value snapshots; the engine mutates its own copy and hands
// out copies, never pointers into shared state.
type Session struct {
	Token       string
	UserID      string
	Email       string
	DisplayName string

	CreatedAt int64
	ExpiresAt int64
}

// Authenticated reports whether all four identity fields are populated. The engine
// treats the session as logged-in exactly when this holds.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != "" && s.Email != "" && s.DisplayName != ""
}
