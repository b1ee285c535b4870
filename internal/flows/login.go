package flows

import (
	"context"
	"fmt"
)

// Identity is the flow-local session payload produced by login and restore.
type Identity struct {
	Token       string
	UserID      string
	Email       string
	DisplayName string
	ExpiresAt   int64
}

// Complete reports whether all four identity fields are populated.
func (i Identity) Complete() bool {
	return i.Token != "" && i.UserID != "" && i.Email != "" && i.DisplayName != ""
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	LoginFailed error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	Errors LoginErrors

	Authenticate func(ctx context.Context, email, password string) (Identity, error)
	DecodeExpiry func(token string) int64

	Apply   func(Identity)
	Reset   func()
	Persist func(ctx context.Context, ident Identity) error
}

// RunLogin authenticates against the backend and commits the resulting session.
// Any failure resets the in-memory session and maps to the host's LoginFailed
// sentinel. Persisted fields from an earlier login are left alone on failure;
// only logout erases them.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (Identity, error) {
	ident, err := deps.Authenticate(ctx, email, password)
	if err != nil {
		deps.Reset()
		return Identity{}, fmt.Errorf("%w: %v", deps.Errors.LoginFailed, err)
	}

	if !ident.Complete() {
		deps.Reset()
		return Identity{}, fmt.Errorf("%w: incomplete identity in login response", deps.Errors.LoginFailed)
	}

	if deps.DecodeExpiry != nil {
		ident.ExpiresAt = deps.DecodeExpiry(ident.Token)
	}

	deps.Apply(ident)

	if err := deps.Persist(ctx, ident); err != nil {
		deps.Reset()
		return Identity{}, fmt.Errorf("%w: %v", deps.Errors.LoginFailed, err)
	}

	return ident, nil
}
