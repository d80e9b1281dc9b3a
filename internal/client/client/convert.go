package client

import (
	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
)

func entryFromAPI(m api.Movie) models.CatalogEntry {
	return models.CatalogEntry{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		IsFavorite:  m.IsFavorite,
	}
}

func entriesFromAPI(in []api.Movie) []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(in))
	for _, m := range in {
		out = append(out, entryFromAPI(m))
	}
	return out
}

func identityFromAPI(i api.Identity) models.Identity {
	ids := i.FavoriteIDs
	if ids == nil {
		ids = []string{}
	}
	return models.Identity{ID: i.ID, Email: i.Email, DisplayName: i.DisplayName, FavoriteIDs: ids}
}
