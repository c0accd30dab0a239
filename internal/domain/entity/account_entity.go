package entity

import (
	"time"
)

// Account is a registered user of the board.
// PasswordHash holds a bcrypt hash and never leaves the server.
type Account struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	PasswordHash     string    `json:"-" db:"password"`
	RegistrationTime time.Time `json:"registration_time" db:"registration_time"`
}

// AccountPatch carries validated account fields. A nil field was not supplied.
// Password is plaintext here; the gateway hashes it before it reaches the store.
type AccountPatch struct {
	Name     *string
	Password *string
}

// Apply overwrites the fields set in p. passwordHash replaces the stored hash
// when p.Password is set.
func (p AccountPatch) Apply(a *Account, passwordHash string) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Password != nil {
		a.PasswordHash = passwordHash
	}
}
