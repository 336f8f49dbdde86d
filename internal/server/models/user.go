// Package models holds the persistent entities of the todomood server.
package models

// User is an identity record. PasswordHash is the bcrypt hash of the
// password; the plaintext is never stored.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}
