package flows

import "context"

// RestoreDeps captures session rehydration dependencies.
type RestoreDeps struct {
	Load         func(ctx context.Context) (Identity, bool, error)
	DecodeExpiry func(token string) int64
	Apply        func(Identity)
}

// RunRestore rehydrates the session from the persisted fields. Only a complete
// set of fields restores the session; partial state is deliberately left in the
// store untouched and reported as not-restored.
func RunRestore(ctx context.Context, deps RestoreDeps) (Identity, bool, error) {
	ident, complete, err := deps.Load(ctx)
	if err != nil {
		return Identity{}, false, err
	}
	if !complete {
		return Identity{}, false, nil
	}

	if deps.DecodeExpiry != nil {
		ident.ExpiresAt = deps.DecodeExpiry(ident.Token)
	}

	deps.Apply(ident)
	return ident, true, nil
}
