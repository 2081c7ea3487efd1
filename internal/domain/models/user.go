package models

import "github.com/google/uuid"

type User struct {
	ID       uuid.UUID
	Email    string
	PassHash []byte
}

// Identity is the authenticated caller as resolved from the session token.
type Identity struct {
	ID    uuid.UUID
	Email string
}
