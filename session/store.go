package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrFieldNotFound is an exported constant or variable used by the booking client.
var ErrFieldNotFound = errors.New("session field not found")

// ErrStoreUnavailable is an exported constant or variable used by the booking client.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Key identifies one persisted session field.
type Key string

const (
	// KeyToken is an exported constant or variable used by the booking client.
	KeyToken Key = "token"
	// KeyUser is an exported constant or variable used by the booking client.
	KeyUser Key = "user"
	// KeyUserID is an exported constant or variable used by the booking client.
	KeyUserID Key = "userId"
	// KeyEmail is an exported constant or variable used by the booking client.
	KeyEmail Key = "emailId"
)

// Keys lists every persisted field, in write order.
var Keys = [4]Key{KeyToken, KeyUser, KeyUserID, KeyEmail}

// Store is the durable key-value medium a session is persisted through.
// Implementations must return [ErrFieldNotFound] for absent keys and treat
// Delete of an absent key as a no-op.
type Store interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error
}

// Save persists all four session fields. The display name is stored JSON-encoded
// under KeyUser; the remaining fields are stored raw.
func Save(ctx context.Context, store Store, s Session) error {
	name, err := json.Marshal(s.DisplayName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	pairs := [4]struct {
		key   Key
		value string
	}{
		{KeyToken, s.Token},
		{KeyUser, string(name)},
		{KeyUserID, s.UserID},
		{KeyEmail, s.Email},
	}

	for _, p := range pairs {
		if err := store.Set(ctx, p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the four persisted fields. complete is true only when every field
// is present; a partial session is returned as-is so the caller can decide what
// to do with it (the engine leaves it untouched).
func Load(ctx context.Context, store Store) (s Session, complete bool, err error) {
	complete = true

	read := func(key Key) (string, error) {
		value, err := store.Get(ctx, key)
		if errors.Is(err, ErrFieldNotFound) {
			complete = false
			return "", nil
		}
		return value, err
	}

	if s.Token, err = read(KeyToken); err != nil {
		return Session{}, false, err
	}
	var rawName string
	if rawName, err = read(KeyUser); err != nil {
		return Session{}, false, err
	}
	if s.UserID, err = read(KeyUserID); err != nil {
		return Session{}, false, err
	}
	if s.Email, err = read(KeyEmail); err != nil {
		return Session{}, false, err
	}

	s.DisplayName = decodeDisplayName(rawName)
	if complete && !s.Authenticated() {
		// Empty stored values cannot satisfy the all-four rule.
		complete = false
	}
	if complete {
		s.CreatedAt = time.Now().Unix()
	}
	return s, complete, nil
}

// Clear deletes the four persisted fields. Deletes of absent keys are no-ops,
// so Clear is idempotent.
func Clear(ctx context.Context, store Store) error {
	for _, key := range Keys {
		if err := store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// decodeDisplayName accepts both the JSON-encoded form this package writes and
// raw strings left by foreign writers.
func decodeDisplayName(raw string) string {
	if raw == "" {
		return ""
	}
	var name string
	if err := json.Unmarshal([]byte(raw), &name); err == nil {
		return name
	}
	return raw
}
