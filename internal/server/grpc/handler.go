package grpc

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/server/metrics"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/dmitrijs2005/moviedeck/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.AuthResponse, error) {
	sess, err := s.users.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.AuthEvent(metrics.EventSignUp)
	s.logger.Info(ctx, "Registered", "user_id", sess.Profile.User.ID)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.AuthResponse, error) {
	sess, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.AuthEvent(metrics.EventSignIn)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) SignInFederated(ctx context.Context, req *api.SignInFederatedRequest) (*api.AuthResponse, error) {
	sess, err := s.users.SignInFederated(ctx, req.IDToken)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.AuthEvent(metrics.EventSignInFederated)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.AuthEvent(metrics.EventRefresh)
	return &api.RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) RequestPasswordReset(ctx context.Context, req *api.PasswordResetRequest) (*api.PasswordResetResponse, error) {
	if err := s.users.RequestPasswordReset(ctx, req.Email); err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.PasswordResetResponse{}, nil
}

func (s *GRPCServer) ConfirmPasswordReset(ctx context.Context, req *api.ConfirmPasswordResetRequest) (*api.ConfirmPasswordResetResponse, error) {
	if err := s.users.ConfirmPasswordReset(ctx, req.Token, req.NewPassword); err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.AuthEvent(metrics.EventPasswordReset)
	return &api.ConfirmPasswordResetResponse{}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	uid, err := actingUser(ctx, api.MethodSignOut, "")
	if err != nil {
		return nil, api.ToStatus(err)
	}
	if err := s.users.SignOut(ctx, uid, req.RefreshToken); err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.AuthEvent(metrics.EventSignOut)
	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.GetProfileResponse, error) {
	uid, err := actingUser(ctx, api.MethodGetProfile, "")
	if err != nil {
		return nil, api.ToStatus(err)
	}
	p, err := s.users.GetProfile(ctx, uid)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.GetProfileResponse{Profile: api.Profile{
		Identity:       toAPIIdentity(p),
		FavoritesCount: p.FavoritesCount,
		LastLogin:      p.User.LastLoginAt,
	}}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UpdateProfileResponse, error) {
	uid, err := actingUser(ctx, api.MethodUpdateProfile, "")
	if err != nil {
		return nil, api.ToStatus(err)
	}
	p, err := s.users.UpdateProfile(ctx, uid, req.DisplayName)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.UpdateProfileResponse{Identity: toAPIIdentity(p)}, nil
}

func (s *GRPCServer) ListMovies(ctx context.Context, req *api.ListMoviesRequest) (*api.ListMoviesResponse, error) {
	es, err := s.catalog.ListAll(ctx, userIDFrom(ctx))
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.ListMoviesResponse{Movies: toAPIMovies(es)}, nil
}

func (s *GRPCServer) GetMovie(ctx context.Context, req *api.GetMovieRequest) (*api.GetMovieResponse, error) {
	e, err := s.catalog.GetByID(ctx, userIDFrom(ctx), req.ID)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.GetMovieResponse{Movie: toAPIMovie(e)}, nil
}

func (s *GRPCServer) SearchMovies(ctx context.Context, req *api.SearchMoviesRequest) (*api.SearchMoviesResponse, error) {
	es, err := s.catalog.Search(ctx, userIDFrom(ctx), req.Query)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.SearchMoviesResponse{Movies: toAPIMovies(es)}, nil
}

func (s *GRPCServer) ListFavorites(ctx context.Context, req *api.ListFavoritesRequest) (*api.ListFavoritesResponse, error) {
	uid, err := actingUser(ctx, api.MethodListFavorites, req.UserID)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	es, err := s.catalog.ListFavorites(ctx, uid)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.ListFavoritesResponse{Movies: toAPIMovies(es)}, nil
}

func (s *GRPCServer) SetFavorite(ctx context.Context, req *api.SetFavoriteRequest) (*api.SetFavoriteResponse, error) {
	uid, err := actingUser(ctx, api.MethodSetFavorite, req.UserID)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	on, err := s.catalog.SetFavorite(ctx, uid, req.MovieID, req.IsFavorite)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	s.metrics.FavoriteToggled(on)
	return &api.SetFavoriteResponse{IsFavorite: on}, nil
}

func (s *GRPCServer) SeedCatalog(ctx context.Context, req *api.SeedCatalogRequest) (*api.SeedCatalogResponse, error) {
	n, err := s.catalog.Seed(ctx)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.SeedCatalogResponse{Seeded: true, Count: n}, nil
}

func (s *GRPCServer) AddMovie(ctx context.Context, req *api.AddMovieRequest) (*api.AddMovieResponse, error) {
	uid, err := actingUser(ctx, api.MethodAddMovie, "")
	if err != nil {
		return nil, api.ToStatus(err)
	}
	m, err := s.catalog.AddMovie(ctx, uid, services.NewMovie{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
	})
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.AddMovieResponse{Movie: toAPIMovie(&models.CatalogEntry{Movie: *m})}, nil
}

func (s *GRPCServer) CreatePosterUpload(ctx context.Context, req *api.CreatePosterUploadRequest) (*api.CreatePosterUploadResponse, error) {
	if _, err := actingUser(ctx, api.MethodCreatePosterUpload, ""); err != nil {
		return nil, api.ToStatus(err)
	}
	up, err := s.posters.CreateUpload(ctx, req.ContentType)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.CreatePosterUploadResponse{Key: up.Key, UploadURL: up.UploadURL, PublicURL: up.PublicURL}, nil
}
