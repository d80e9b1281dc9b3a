package models

import "time"

type User struct {
	ID                string
	Email             string
	DisplayName       string
	PasswordHash      []byte
	FederatedProvider string
	FederatedSubject  string
	LastLoginAt       *time.Time
	CreatedAt         time.Time
}

// Profile is a user together with the stats shown on the profile screen.
type Profile struct {
	User           *User
	FavoriteIDs    []string
	FavoritesCount int
}
