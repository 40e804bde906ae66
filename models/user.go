package models

import "time"

// User represents an account entity used for authentication and
// authorization. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user; non-sensitive.
	Name string `json:"name"`

	// Password carries the plaintext password only on inbound
	// register/login requests. Never persisted; the store keeps
	// PasswordHash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored at the persistence layer.
	PasswordHash string `json:"-"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}
