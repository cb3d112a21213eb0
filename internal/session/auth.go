package session

import (
	"context"
	"encoding/json"
	"fmt"

	"authweb/internal/users"
)

// SlotUser is the session slot holding the authenticated-user record.
const SlotUser = "auth_user"

// Auth reads and writes the session-resident authenticated-user record.
type Auth struct {
	store *Store
}

// NewAuth wraps a session store with authenticated-user accessors.
func NewAuth(store *Store) *Auth {
	return &Auth{store: store}
}

// SetUser writes the authenticated-user record into the session. The
// record stays until logout or session expiry.
func (a *Auth) SetUser(ctx context.Context, sessionID string, user users.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode auth user: %w", err)
	}
	return a.store.Set(ctx, sessionID, SlotUser, string(data))
}

// User returns the authenticated user for the session, if any.
func (a *Auth) User(ctx context.Context, sessionID string) (users.User, bool, error) {
	raw, ok, err := a.store.Get(ctx, sessionID, SlotUser)
	if err != nil || !ok {
		return users.User{}, false, err
	}

	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// A corrupt record is treated as unauthenticated rather than a
		// request failure; the slot is overwritten on next login.
		return users.User{}, false, nil
	}
	return user, true, nil
}

// Flush destroys the entire session: the user record, pending messages,
// and any stashed form data.
func (a *Auth) Flush(ctx context.Context, sessionID string) error {
	return a.store.Flush(ctx, sessionID)
}
