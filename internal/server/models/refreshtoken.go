package models

import "time"

type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// ResetToken is a one-time password reset credential.
type ResetToken struct {
	Token     string
	UserID    string
	Expires   time.Time
	CreatedAt time.Time
}
