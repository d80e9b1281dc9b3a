package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "moviedeck.v1.Catalog"

const (
	MethodPing                 = "Ping"
	MethodSignUp               = "SignUp"
	MethodSignIn               = "SignIn"
	MethodSignInFederated      = "SignInFederated"
	MethodRefreshToken         = "RefreshToken"
	MethodRequestPasswordReset = "RequestPasswordReset"
	MethodConfirmPasswordReset = "ConfirmPasswordReset"
	MethodSignOut              = "SignOut"
	MethodGetProfile           = "GetProfile"
	MethodUpdateProfile        = "UpdateProfile"
	MethodListMovies           = "ListMovies"
	MethodGetMovie             = "GetMovie"
	MethodSearchMovies         = "SearchMovies"
	MethodListFavorites        = "ListFavorites"
	MethodSetFavorite          = "SetFavorite"
	MethodSeedCatalog          = "SeedCatalog"
	MethodAddMovie             = "AddMovie"
	MethodCreatePosterUpload   = "CreatePosterUpload"
)

// FullMethod returns the "/service/method" path used by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CatalogServer is implemented by the backend.
type CatalogServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignUp(context.Context, *SignUpRequest) (*AuthResponse, error)
	SignIn(context.Context, *SignInRequest) (*AuthResponse, error)
	SignInFederated(context.Context, *SignInFederatedRequest) (*AuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	RequestPasswordReset(context.Context, *PasswordResetRequest) (*PasswordResetResponse, error)
	ConfirmPasswordReset(context.Context, *ConfirmPasswordResetRequest) (*ConfirmPasswordResetResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesResponse, error)
	GetMovie(context.Context, *GetMovieRequest) (*GetMovieResponse, error)
	SearchMovies(context.Context, *SearchMoviesRequest) (*SearchMoviesResponse, error)
	ListFavorites(context.Context, *ListFavoritesRequest) (*ListFavoritesResponse, error)
	SetFavorite(context.Context, *SetFavoriteRequest) (*SetFavoriteResponse, error)
	SeedCatalog(context.Context, *SeedCatalogRequest) (*SeedCatalogResponse, error)
	AddMovie(context.Context, *AddMovieRequest) (*AddMovieResponse, error)
	CreatePosterUpload(context.Context, *CreatePosterUploadRequest) (*CreatePosterUploadResponse, error)
}

// unary adapts a CatalogServer method expression to a grpc.MethodDesc.
func unary[Req, Resp any](method string, call func(CatalogServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CatalogServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CatalogServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the Catalog service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, CatalogServer.Ping),
		unary(MethodSignUp, CatalogServer.SignUp),
		unary(MethodSignIn, CatalogServer.SignIn),
		unary(MethodSignInFederated, CatalogServer.SignInFederated),
		unary(MethodRefreshToken, CatalogServer.RefreshToken),
		unary(MethodRequestPasswordReset, CatalogServer.RequestPasswordReset),
		unary(MethodConfirmPasswordReset, CatalogServer.ConfirmPasswordReset),
		unary(MethodSignOut, CatalogServer.SignOut),
		unary(MethodGetProfile, CatalogServer.GetProfile),
		unary(MethodUpdateProfile, CatalogServer.UpdateProfile),
		unary(MethodListMovies, CatalogServer.ListMovies),
		unary(MethodGetMovie, CatalogServer.GetMovie),
		unary(MethodSearchMovies, CatalogServer.SearchMovies),
		unary(MethodListFavorites, CatalogServer.ListFavorites),
		unary(MethodSetFavorite, CatalogServer.SetFavorite),
		unary(MethodSeedCatalog, CatalogServer.SeedCatalog),
		unary(MethodAddMovie, CatalogServer.AddMovie),
		unary(MethodCreatePosterUpload, CatalogServer.CreatePosterUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moviedeck/v1/catalog",
}

// RegisterCatalogServer attaches srv to s.
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&ServiceDesc, srv)
}
