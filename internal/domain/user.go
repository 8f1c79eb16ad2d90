package domain

import "time"

// User represents a registered account. Identity is the ID; Email is the
// external login key and is unique across the collection. The password hash
// is serialized under "password" to keep the on-disk documents compatible
// with the existing data layout.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}
