package models

import "time"

// Identity is the signed-in user as returned by the identity provider.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	FavoriteIDs []string
}

// AuthResult is returned by every sign-in flavour.
type AuthResult struct {
	Identity  Identity
	IsNewUser bool
}

type Profile struct {
	Identity       Identity
	FavoritesCount int
	LastLogin      *time.Time
}

// Settings mirrors the toggles of the settings screen. They are kept in the
// local preferences store only.
type Settings struct {
	NotificationsEnabled bool
	AutoplayTrailers     bool
	DarkMode             bool
}
