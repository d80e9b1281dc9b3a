package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// catalogAPI is the subset of *api.CatalogClient used here. Tests swap in a fake.
type catalogAPI interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	SignUp(ctx context.Context, in *api.SignUpRequest, opts ...grpc.CallOption) (*api.AuthResponse, error)
	SignIn(ctx context.Context, in *api.SignInRequest, opts ...grpc.CallOption) (*api.AuthResponse, error)
	SignInFederated(ctx context.Context, in *api.SignInFederatedRequest, opts ...grpc.CallOption) (*api.AuthResponse, error)
	RefreshToken(ctx context.Context, in *api.RefreshTokenRequest, opts ...grpc.CallOption) (*api.RefreshTokenResponse, error)
	RequestPasswordReset(ctx context.Context, in *api.PasswordResetRequest, opts ...grpc.CallOption) (*api.PasswordResetResponse, error)
	ConfirmPasswordReset(ctx context.Context, in *api.ConfirmPasswordResetRequest, opts ...grpc.CallOption) (*api.ConfirmPasswordResetResponse, error)
	SignOut(ctx context.Context, in *api.SignOutRequest, opts ...grpc.CallOption) (*api.SignOutResponse, error)
	GetProfile(ctx context.Context, in *api.GetProfileRequest, opts ...grpc.CallOption) (*api.GetProfileResponse, error)
	UpdateProfile(ctx context.Context, in *api.UpdateProfileRequest, opts ...grpc.CallOption) (*api.UpdateProfileResponse, error)
	ListMovies(ctx context.Context, in *api.ListMoviesRequest, opts ...grpc.CallOption) (*api.ListMoviesResponse, error)
	GetMovie(ctx context.Context, in *api.GetMovieRequest, opts ...grpc.CallOption) (*api.GetMovieResponse, error)
	SearchMovies(ctx context.Context, in *api.SearchMoviesRequest, opts ...grpc.CallOption) (*api.SearchMoviesResponse, error)
	ListFavorites(ctx context.Context, in *api.ListFavoritesRequest, opts ...grpc.CallOption) (*api.ListFavoritesResponse, error)
	SetFavorite(ctx context.Context, in *api.SetFavoriteRequest, opts ...grpc.CallOption) (*api.SetFavoriteResponse, error)
	SeedCatalog(ctx context.Context, in *api.SeedCatalogRequest, opts ...grpc.CallOption) (*api.SeedCatalogResponse, error)
	AddMovie(ctx context.Context, in *api.AddMovieRequest, opts ...grpc.CallOption) (*api.AddMovieResponse, error)
	CreatePosterUpload(ctx context.Context, in *api.CreatePosterUploadRequest, opts ...grpc.CallOption) (*api.CreatePosterUploadResponse, error)
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      catalogAPI

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	refreshes singleflight.Group
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current access token and, when the
// server reports token_expired, refreshes the pair once and replays the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.Tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || method == api.FullMethod(api.MethodRefreshToken) {
		return err
	}

	if common.KindOf(api.FromStatus(method, err)) != common.KindTokenExpired {
		return err
	}
	if refresh == "" {
		return err
	}

	if err := s.refresh(ctx, refresh); err != nil {
		return err
	}

	access, _ = s.Tokens()
	return invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
}

// refresh rotates the token pair. Concurrent callers holding the same stale
// refresh token share one RefreshToken call, since the server invalidates
// the old token on first use. A caller whose token was already rotated by
// an earlier refresh skips the call and replays with the current pair.
func (s *GRPCClient) refresh(ctx context.Context, stale string) error {
	_, err, _ := s.refreshes.Do(stale, func() (any, error) {
		if _, current := s.Tokens(); current != stale {
			return nil, nil
		}
		resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: stale})
		if err != nil {
			return nil, err
		}
		s.SetTokens(resp.AccessToken, resp.RefreshToken)
		return nil, nil
	})
	return err
}

// NewMovieDeckClient prepares a lazily dialled connection to endpointURL.
// timeout bounds every call; zero means no per-call deadline.
func NewMovieDeckClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewCatalogClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Tokens returns the current access and refresh tokens.
func (s *GRPCClient) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(api.MethodPing, err)
	}
	if resp.Status != "OK" {
		return common.E(common.KindUnavailable, api.MethodPing, nil)
	}
	return nil
}

func (s *GRPCClient) authenticated(resp *api.AuthResponse) *models.AuthResult {
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &models.AuthResult{Identity: identityFromAPI(resp.Identity), IsNewUser: resp.IsNewUser}
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password, displayName string) (*models.AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password, DisplayName: displayName})
	if err != nil {
		return nil, mapError(api.MethodSignUp, err)
	}
	return s.authenticated(resp), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(api.MethodSignIn, err)
	}
	return s.authenticated(resp), nil
}

func (s *GRPCClient) SignInFederated(ctx context.Context, idToken string) (*models.AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SignInFederated(ctx, &api.SignInFederatedRequest{IDToken: idToken})
	if err != nil {
		return nil, mapError(api.MethodSignInFederated, err)
	}
	return s.authenticated(resp), nil
}

func (s *GRPCClient) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.RequestPasswordReset(ctx, &api.PasswordResetRequest{Email: email})
	return mapError(api.MethodRequestPasswordReset, err)
}

func (s *GRPCClient) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.ConfirmPasswordReset(ctx, &api.ConfirmPasswordResetRequest{Token: token, NewPassword: newPassword})
	return mapError(api.MethodConfirmPasswordReset, err)
}

// SignOut revokes the refresh token on the server and forgets both tokens.
// The local tokens are dropped even when the call fails.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	_, refresh := s.Tokens()
	defer s.SetTokens("", "")
	if refresh == "" {
		return ErrNotSignedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.SignOut(ctx, &api.SignOutRequest{RefreshToken: refresh})
	return mapError(api.MethodSignOut, err)
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetProfile(ctx, &api.GetProfileRequest{})
	if err != nil {
		return nil, mapError(api.MethodGetProfile, err)
	}
	return &models.Profile{
		Identity:       identityFromAPI(resp.Profile.Identity),
		FavoritesCount: resp.Profile.FavoritesCount,
		LastLogin:      resp.Profile.LastLogin,
	}, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, displayName string) (*models.Identity, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateProfile(ctx, &api.UpdateProfileRequest{DisplayName: displayName})
	if err != nil {
		return nil, mapError(api.MethodUpdateProfile, err)
	}
	id := identityFromAPI(resp.Identity)
	return &id, nil
}

func (s *GRPCClient) ListMovies(ctx context.Context) ([]models.CatalogEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListMovies(ctx, &api.ListMoviesRequest{})
	if err != nil {
		return nil, mapError(api.MethodListMovies, err)
	}
	return entriesFromAPI(resp.Movies), nil
}

func (s *GRPCClient) GetMovie(ctx context.Context, id string) (*models.CatalogEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetMovie(ctx, &api.GetMovieRequest{ID: id})
	if err != nil {
		return nil, mapError(api.MethodGetMovie, err)
	}
	e := entryFromAPI(resp.Movie)
	return &e, nil
}

func (s *GRPCClient) SearchMovies(ctx context.Context, query string) ([]models.CatalogEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SearchMovies(ctx, &api.SearchMoviesRequest{Query: query})
	if err != nil {
		return nil, mapError(api.MethodSearchMovies, err)
	}
	return entriesFromAPI(resp.Movies), nil
}

func (s *GRPCClient) ListFavorites(ctx context.Context, userID string) ([]models.CatalogEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListFavorites(ctx, &api.ListFavoritesRequest{UserID: userID})
	if err != nil {
		return nil, mapError(api.MethodListFavorites, err)
	}
	return entriesFromAPI(resp.Movies), nil
}

func (s *GRPCClient) SetFavorite(ctx context.Context, userID, movieID string, isFavorite bool) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SetFavorite(ctx, &api.SetFavoriteRequest{UserID: userID, MovieID: movieID, IsFavorite: isFavorite})
	if err != nil {
		return false, mapError(api.MethodSetFavorite, err)
	}
	return resp.IsFavorite, nil
}

func (s *GRPCClient) SeedCatalog(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SeedCatalog(ctx, &api.SeedCatalogRequest{})
	if err != nil {
		return 0, mapError(api.MethodSeedCatalog, err)
	}
	return resp.Count, nil
}

func (s *GRPCClient) AddMovie(ctx context.Context, in models.NewCatalogEntry) (*models.CatalogEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.AddMovie(ctx, &api.AddMovieRequest{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
	})
	if err != nil {
		return nil, mapError(api.MethodAddMovie, err)
	}
	e := entryFromAPI(resp.Movie)
	return &e, nil
}

func (s *GRPCClient) CreatePosterUpload(ctx context.Context, contentType string) (*models.PosterUpload, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreatePosterUpload(ctx, &api.CreatePosterUploadRequest{ContentType: contentType})
	if err != nil {
		return nil, mapError(api.MethodCreatePosterUpload, err)
	}
	return &models.PosterUpload{Key: resp.Key, UploadURL: resp.UploadURL, PublicURL: resp.PublicURL}, nil
}
