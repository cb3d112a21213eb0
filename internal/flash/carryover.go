package flash

import (
	"context"
	"encoding/json"
	"fmt"

	"authweb/internal/forms"
	"authweb/internal/session"
)

// SlotForm is the session slot holding a stashed registration form.
const SlotForm = "form_data"

// FormStash carries a failed registration submission across the redirect
// back to the registration page, so the form re-renders pre-filled.
type FormStash struct {
	store *session.Store
}

// NewFormStash wraps a session store with form carryover accessors.
func NewFormStash(store *session.Store) *FormStash {
	return &FormStash{store: store}
}

// Stash serializes data into the session, overwriting any prior stash.
// The confirmation password is excluded from serialization.
func (f *FormStash) Stash(ctx context.Context, sessionID string, data forms.RegisterData) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode form data: %w", err)
	}
	return f.store.Set(ctx, sessionID, SlotForm, string(encoded))
}

// Pop consumes the stashed form, removing it from the session. Missing
// or malformed content yields the zero form rather than an error.
func (f *FormStash) Pop(ctx context.Context, sessionID string) (forms.RegisterData, error) {
	raw, ok, err := f.store.Take(ctx, sessionID, SlotForm)
	if err != nil {
		return forms.RegisterData{}, err
	}
	if !ok || raw == "" {
		return forms.RegisterData{}, nil
	}

	var data forms.RegisterData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return forms.RegisterData{}, nil
	}
	return data, nil
}
