// Package models defines the client-side view of catalog entries and
// identities used by the MovieDeck CLI.
package models

// CatalogEntry is a movie as seen by one viewer. IsFavorite is derived from
// the viewer's favorites document and is never part of the stored record.
type CatalogEntry struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	ReleaseYear int
	Rating      float64
	IsFavorite  bool
}

// NewCatalogEntry is the input for adding a movie. Tags are checked by the
// CLI before the request is sent.
type NewCatalogEntry struct {
	Title       string  `validate:"required"`
	Description string  `validate:"required"`
	ImageURL    string  `validate:"omitempty,url"`
	ReleaseYear int     `validate:"gte=1888,lte=2100"`
	Rating      float64 `validate:"gte=0,lte=10"`
}

// PosterUpload is a one-shot upload slot for a poster image.
type PosterUpload struct {
	Key       string
	UploadURL string
	PublicURL string
}

// IDs returns the ids of entries in order.
func IDs(entries []CatalogEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
