// Package flash carries one-shot session state across redirects: leveled
// flash messages shown on the next page render, and failed registration
// form data re-displayed on the next render of the registration page.
// Both live in session slots and are consumed exactly once.
package flash

import (
	"context"
	"encoding/json"
	"fmt"

	"authweb/internal/session"
)

// Level tags a flash message for display.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// SlotMessages is the session slot holding pending flash messages.
const SlotMessages = "flash_messages"

// Message is a single pending notice attached to a session.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Format renders the message the way templates display it.
func (m Message) Format() string {
	return fmt.Sprintf("%s: %s", m.Level, m.Text)
}

// Messenger appends and drains flash messages on a session.
type Messenger struct {
	store *session.Store
}

// NewMessenger wraps a session store with flash message accessors.
func NewMessenger(store *session.Store) *Messenger {
	return &Messenger{store: store}
}

// Add appends a leveled message to the session's pending list. FIFO
// order is preserved across calls.
func (m *Messenger) Add(ctx context.Context, sessionID string, level Level, text string) error {
	raw, _, err := m.store.Get(ctx, sessionID, SlotMessages)
	if err != nil {
		return err
	}

	var pending []Message
	if raw != "" {
		// A malformed list is discarded rather than failing the request;
		// the new message starts a fresh list.
		_ = json.Unmarshal([]byte(raw), &pending)
	}
	pending = append(pending, Message{Level: level, Text: text})

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode flash messages: %w", err)
	}
	return m.store.Set(ctx, sessionID, SlotMessages, string(data))
}

// Drain returns all pending messages formatted as "level: text" and
// clears the list atomically. Draining an empty session yields an empty
// slice, not an error.
func (m *Messenger) Drain(ctx context.Context, sessionID string) ([]string, error) {
	raw, ok, err := m.store.Take(ctx, sessionID, SlotMessages)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var pending []Message
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return []string{}, nil
	}

	formatted := make([]string, 0, len(pending))
	for _, msg := range pending {
		formatted = append(formatted, msg.Format())
	}
	return formatted, nil
}
