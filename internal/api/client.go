package api

import (
	"context"

	"google.golang.org/grpc"
)

// CatalogClient is the typed client stub for the Catalog service.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *CatalogClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignUp, in, opts)
}

func (c *CatalogClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *CatalogClient) SignInFederated(ctx context.Context, in *SignInFederatedRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignInFederated, in, opts)
}

func (c *CatalogClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *CatalogClient) RequestPasswordReset(ctx context.Context, in *PasswordResetRequest, opts ...grpc.CallOption) (*PasswordResetResponse, error) {
	return invoke[PasswordResetResponse](ctx, c.cc, MethodRequestPasswordReset, in, opts)
}

func (c *CatalogClient) ConfirmPasswordReset(ctx context.Context, in *ConfirmPasswordResetRequest, opts ...grpc.CallOption) (*ConfirmPasswordResetResponse, error) {
	return invoke[ConfirmPasswordResetResponse](ctx, c.cc, MethodConfirmPasswordReset, in, opts)
}

func (c *CatalogClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, MethodSignOut, in, opts)
}

func (c *CatalogClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *CatalogClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	return invoke[UpdateProfileResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *CatalogClient) ListMovies(ctx context.Context, in *ListMoviesRequest, opts ...grpc.CallOption) (*ListMoviesResponse, error) {
	return invoke[ListMoviesResponse](ctx, c.cc, MethodListMovies, in, opts)
}

func (c *CatalogClient) GetMovie(ctx context.Context, in *GetMovieRequest, opts ...grpc.CallOption) (*GetMovieResponse, error) {
	return invoke[GetMovieResponse](ctx, c.cc, MethodGetMovie, in, opts)
}

func (c *CatalogClient) SearchMovies(ctx context.Context, in *SearchMoviesRequest, opts ...grpc.CallOption) (*SearchMoviesResponse, error) {
	return invoke[SearchMoviesResponse](ctx, c.cc, MethodSearchMovies, in, opts)
}

func (c *CatalogClient) ListFavorites(ctx context.Context, in *ListFavoritesRequest, opts ...grpc.CallOption) (*ListFavoritesResponse, error) {
	return invoke[ListFavoritesResponse](ctx, c.cc, MethodListFavorites, in, opts)
}

func (c *CatalogClient) SetFavorite(ctx context.Context, in *SetFavoriteRequest, opts ...grpc.CallOption) (*SetFavoriteResponse, error) {
	return invoke[SetFavoriteResponse](ctx, c.cc, MethodSetFavorite, in, opts)
}

func (c *CatalogClient) SeedCatalog(ctx context.Context, in *SeedCatalogRequest, opts ...grpc.CallOption) (*SeedCatalogResponse, error) {
	return invoke[SeedCatalogResponse](ctx, c.cc, MethodSeedCatalog, in, opts)
}

func (c *CatalogClient) AddMovie(ctx context.Context, in *AddMovieRequest, opts ...grpc.CallOption) (*AddMovieResponse, error) {
	return invoke[AddMovieResponse](ctx, c.cc, MethodAddMovie, in, opts)
}

func (c *CatalogClient) CreatePosterUpload(ctx context.Context, in *CreatePosterUploadRequest, opts ...grpc.CallOption) (*CreatePosterUploadResponse, error) {
	return invoke[CreatePosterUploadResponse](ctx, c.cc, MethodCreatePosterUpload, in, opts)
}
