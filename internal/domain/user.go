package domain

import "time"

// User represents a registered account
type User struct {
	ID           string
	Username     Identity
	PasswordHash []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// Identity returns the token the booking engine trusts
func (u *User) Identity() Identity {
	return u.Username
}

// UserSet maps usernames to accounts; persisted as a single document
type UserSet map[Identity]User

// Exists returns true if the username is taken
func (s UserSet) Exists(username Identity) bool {
	_, ok := s[username]
	return ok
}

// UserSnapshot is a user set together with its durable version
type UserSnapshot struct {
	Users   UserSet
	Version int64
}
