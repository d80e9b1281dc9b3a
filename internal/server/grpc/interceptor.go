package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// anonymousMethods never look at the access token.
var anonymousMethods = map[string]bool{
	api.FullMethod(api.MethodPing):                 true,
	api.FullMethod(api.MethodSignUp):               true,
	api.FullMethod(api.MethodSignIn):               true,
	api.FullMethod(api.MethodSignInFederated):      true,
	api.FullMethod(api.MethodRefreshToken):         true,
	api.FullMethod(api.MethodRequestPasswordReset): true,
	api.FullMethod(api.MethodConfirmPasswordReset): true,
	api.FullMethod(api.MethodSeedCatalog):          true,
}

// healthServicePrefix covers grpc.health.v1 Check and Watch, which probes
// call without credentials.
const healthServicePrefix = "/grpc.health.v1.Health/"

// optionalAuthMethods work without a token, but a token that is sent is
// verified so listings can mark the viewer's favorites.
var optionalAuthMethods = map[string]bool{
	api.FullMethod(api.MethodListMovies):   true,
	api.FullMethod(api.MethodGetMovie):     true,
	api.FullMethod(api.MethodSearchMovies): true,
}

func accessTokenFrom(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if anonymousMethods[info.FullMethod] || strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	accessToken := accessTokenFrom(ctx)
	if accessToken == "" {
		if optionalAuthMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		return nil, api.ToStatus(common.E(common.KindUnauthorized, info.FullMethod, nil))
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, api.ToStatus(common.E(common.KindTokenExpired, info.FullMethod, err))
		}
		return nil, api.ToStatus(common.E(common.KindUnauthorized, info.FullMethod, err))
	}

	ctx = context.WithValue(ctx, userIDKey, userID)
	return handler(ctx, req)
}

// userIDFrom returns the authenticated user, or "" for anonymous calls.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// actingUser resolves the user a request operates on. A user id in the
// request must match the token's user.
func actingUser(ctx context.Context, op, requested string) (string, error) {
	uid := userIDFrom(ctx)
	if uid == "" {
		return "", common.E(common.KindUnauthorized, op, nil)
	}
	if requested != "" && requested != uid {
		return "", common.E(common.KindPermissionDenied, op, nil)
	}
	return uid, nil
}
