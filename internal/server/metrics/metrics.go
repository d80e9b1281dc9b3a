// Package metrics holds the Prometheus collectors of the server. Collectors
// live on a private registry so tests can build as many as they need.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const namespace = "moviedeck"

// Auth event labels.
const (
	EventSignUp          = "sign_up"
	EventSignIn          = "sign_in"
	EventSignInFederated = "sign_in_federated"
	EventRefresh         = "refresh"
	EventPasswordReset   = "password_reset"
	EventSignOut         = "sign_out"
)

type Metrics struct {
	registry         *prometheus.Registry
	rpcRequests      *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	favoritesToggles *prometheus.CounterVec
	authEvents       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Total number of gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Duration of gRPC requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"method"}),
		favoritesToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_toggles_total",
			Help:      "Favorite flags set or cleared.",
		}, []string{"state"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Successful identity provider events.",
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		m.rpcRequests,
		m.rpcDuration,
		m.favoritesToggles,
		m.authEvents,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) FavoriteToggled(on bool) {
	m.favoritesToggles.WithLabelValues(strconv.FormatBool(on)).Inc()
}

func (m *Metrics) AuthEvent(event string) {
	m.authEvents.WithLabelValues(event).Inc()
}

// UnaryServerInterceptor records request count and latency per method.
func (m *Metrics) UnaryServerInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	m.rpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	m.rpcRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	return resp, err
}
