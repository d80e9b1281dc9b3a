package grpc

import (
	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/dmitrijs2005/moviedeck/internal/server/services"
)

func toAPIMovie(e *models.CatalogEntry) api.Movie {
	return api.Movie{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		ReleaseYear: e.ReleaseYear,
		Rating:      e.Rating,
		IsFavorite:  e.IsFavorite,
	}
}

func toAPIMovies(es []*models.CatalogEntry) []api.Movie {
	out := make([]api.Movie, 0, len(es))
	for _, e := range es {
		out = append(out, toAPIMovie(e))
	}
	return out
}

func toAPIIdentity(p *models.Profile) api.Identity {
	ids := p.FavoriteIDs
	if ids == nil {
		ids = []string{}
	}
	return api.Identity{
		ID:          p.User.ID,
		Email:       p.User.Email,
		DisplayName: p.User.DisplayName,
		FavoriteIDs: ids,
	}
}

func toAuthResponse(sess *services.Session) *api.AuthResponse {
	return &api.AuthResponse{
		Identity:     toAPIIdentity(sess.Profile),
		AccessToken:  sess.Tokens.AccessToken,
		RefreshToken: sess.Tokens.RefreshToken,
		IsNewUser:    sess.IsNewUser,
	}
}
