package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptor(t *testing.T) {
	m := New()
	info := &grpc.UnaryServerInfo{FullMethod: "/moviedeck.v1.Catalog/Ping"}

	_, err := m.UnaryServerInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	_, err = m.UnaryServerInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "not_found")
	})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues(info.FullMethod, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues(info.FullMethod, "NotFound")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.rpcDuration))
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.FavoriteToggled(true)
	m.FavoriteToggled(true)
	m.FavoriteToggled(false)
	m.AuthEvent(EventSignIn)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.favoritesToggles.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.favoritesToggles.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues(EventSignIn)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.AuthEvent(EventSignUp)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `moviedeck_auth_events_total{event="sign_up"} 1`))
}
