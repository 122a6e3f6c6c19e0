// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/lessons-backend/internal/identity"
	"github.com/carterperez-dev/templates/lessons-backend/internal/middleware"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type fakeRepo struct {
	counts *PlatformCounts
	err    error
}

func (f fakeRepo) Counts(context.Context) (*PlatformCounts, error) {
	return f.counts, f.err
}

type principals struct{}

func (principals) Lookup(_ context.Context, email string) (policy.Actor, error) {
	if email == "root@example.com" {
		return policy.Actor{Email: email, Role: policy.RoleAdmin}, nil
	}
	return policy.Actor{Email: email, Role: policy.RoleUser}, nil
}

func newRouter(repo Repository) http.Handler {
	verifier := identity.NewStaticVerifier(map[string]identity.Identity{
		"admin-token": {Email: "root@example.com"},
		"user-token":  {Email: "user@example.com"},
	})

	h := NewHandler(HandlerConfig{
		Repository: repo,
		DBStats:    func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, InUse: 2} },
		DBPing:     func(context.Context) error { return nil },
		RedisPing:  func(context.Context) error { return errors.New("connection refused") },
	})

	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(verifier, principals{}))
	return r
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStats_AdminOnly(t *testing.T) {
	h := newRouter(fakeRepo{counts: &PlatformCounts{}})

	assert.Equal(t, http.StatusUnauthorized, get(h, "/admin/stats", "").Code)
	assert.Equal(t, http.StatusForbidden, get(h, "/admin/stats", "user-token").Code)
	assert.Equal(t, http.StatusOK, get(h, "/admin/stats", "admin-token").Code)
	assert.Equal(t, http.StatusOK, get(h, "/admin/stats/runtime", "admin-token").Code)
}

func TestStats_Body(t *testing.T) {
	h := newRouter(fakeRepo{counts: &PlatformCounts{
		Users: 10, PremiumUsers: 3, Lessons: 42, OpenReports: 2, RevenueCents: 4500,
	}})

	rec := get(h, "/admin/stats", "admin-token")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data PlatformStatsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))

	require.NotNil(t, env.Data.Platform)
	assert.Equal(t, 10, env.Data.Platform.Users)
	assert.Equal(t, 3, env.Data.Platform.PremiumUsers)
	assert.Equal(t, 2, env.Data.Platform.OpenReports)
	assert.Equal(t, int64(4500), env.Data.Platform.RevenueCents)

	assert.True(t, env.Data.System.Database.Healthy)
	require.NotNil(t, env.Data.System.Database.Stats)
	assert.Equal(t, 25, env.Data.System.Database.Stats.MaxOpenConnections)
	assert.False(t, env.Data.System.Redis.Healthy)
	assert.Nil(t, env.Data.System.Redis.Stats)
	assert.NotEmpty(t, env.Data.System.Runtime.GoVersion)
}

func TestStats_CountFailureDegrades(t *testing.T) {
	h := newRouter(fakeRepo{err: errors.New("db down")})

	rec := get(h, "/admin/stats", "admin-token")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data PlatformStatsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Nil(t, env.Data.Platform)
}
