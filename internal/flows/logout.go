package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	Reset      func()
	ClearStore func(ctx context.Context) error
}

// RunLogout unconditionally clears the in-memory session and then the persisted
// fields. The in-memory reset happens first so the caller is logged out even
// when the store is unreachable; the store error is still surfaced.
func RunLogout(ctx context.Context, deps LogoutDeps) error {
	deps.Reset()
	return deps.ClearStore(ctx)
}
