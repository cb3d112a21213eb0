package users

import "time"

// User is the account snapshot written into the session after a
// successful login or registration. The password hash never leaves
// the store.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
