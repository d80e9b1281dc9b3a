package grpc

import (
	"context"
	"net"
	"sync"

	"github.com/dmitrijs2005/moviedeck/internal/api"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
)

// maxTrackedPeers bounds the limiter map; it is reset when exceeded.
const maxTrackedPeers = 10000

var rateLimitedMethods = map[string]bool{
	api.FullMethod(api.MethodSignUp):               true,
	api.FullMethod(api.MethodSignIn):               true,
	api.FullMethod(api.MethodSignInFederated):      true,
	api.FullMethod(api.MethodRequestPasswordReset): true,
	api.FullMethod(api.MethodConfirmPasswordReset): true,
}

// peerLimiter keeps one token bucket per remote host.
type peerLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newPeerLimiter(perSecond float64, burst int) *peerLimiter {
	return &peerLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *peerLimiter) allow(key string) bool {
	if l.rate <= 0 {
		return true
	}

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxTrackedPeers {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}

func peerKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if rateLimitedMethods[info.FullMethod] {
		key := peerKey(ctx)
		if !s.limiter.allow(key) {
			s.logger.Warn(ctx, "rate limit exceeded", "peer", key, "method", info.FullMethod)
			return nil, api.ToStatus(common.E(common.KindRateLimited, info.FullMethod, nil))
		}
	}
	return handler(ctx, req)
}
