// Package prefs stores CLI preferences in the local SQLite database.
package prefs

import (
	"context"
)

const (
	KeyFirstRun             = "is_first_run"
	KeyNotificationsEnabled = "notifications_enabled"
	KeyAutoplayTrailers     = "autoplay_trailers"
	KeyDarkMode             = "dark_mode"
)

// SettingKeys lists the user-facing toggles in display order.
var SettingKeys = []string{KeyNotificationsEnabled, KeyAutoplayTrailers, KeyDarkMode}

type Repository interface {
	// Get returns ("", false, nil) when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	GetBool(ctx context.Context, key string) (value bool, ok bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
