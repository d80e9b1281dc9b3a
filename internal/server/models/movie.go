// Package models defines the server-side records persisted in the database.
package models

import "time"

// Movie is a canonical catalog document. It never carries per-user state;
// favorites are joined in by the catalog service.
type Movie struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	ReleaseYear int
	Rating      float64
	CreatedBy   string
	CreatedAt   time.Time
}

// CatalogEntry is a Movie as seen by one viewer.
type CatalogEntry struct {
	Movie
	IsFavorite bool
}

// Favorites is the per-user favorites document: movie id to flag.
type Favorites map[string]bool

// IDs returns the ids whose flag is true.
func (f Favorites) IDs() []string {
	ids := make([]string, 0, len(f))
	for id, on := range f {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}
