// AngelaMos | 2026
// handler_test.go

package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/identity"
	"github.com/carterperez-dev/templates/lessons-backend/internal/middleware"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

const adminEmail = "mod@example.com"

type principals struct{}

func (principals) Lookup(_ context.Context, email string) (policy.Actor, error) {
	if email == adminEmail {
		return policy.Actor{Email: email, Role: policy.RoleAdmin}, nil
	}
	return policy.Actor{Email: email, Role: policy.RoleUser}, nil
}

type testEnv struct {
	router http.Handler
	repo   *fakeRepo
}

func newTestEnv() *testEnv {
	svc, repo := newTestService()
	verifier := identity.NewStaticVerifier(map[string]identity.Identity{
		"user-token":  {Email: "user@example.com"},
		"admin-token": {Email: adminEmail},
	})

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(
		r,
		middleware.Authenticator(verifier, principals{}),
		middleware.OptionalAuth(verifier, principals{}),
	)
	return &testEnv{router: r, repo: repo}
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_FileReportAnonymously(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/lessonsReports", "",
		`{"lessonId":"`+lessonID+`","reporterEmail":"anon@example.com","reason":"spam"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/lessonsReports", "",
		`{"lessonId":"`+missingID+`","reporterEmail":"anon@example.com","reason":"spam"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/lessonsReports", "",
		`{"lessonId":"`+lessonID+`","reporterEmail":"anon@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Len(t, env.repo.reports, 1)
}

func TestHandler_ListIsAdminOnly(t *testing.T) {
	env := newTestEnv()
	env.do(http.MethodPost, "/lessonsReports", "user-token",
		`{"lessonId":"`+lessonID+`","reason":"offensive"}`)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/lessonsReports", "", "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/lessonsReports", "user-token", "").Code)

	rec := env.do(http.MethodGet, "/lessonsReports", "admin-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []ReportResponse `json:"data"`
		Meta *core.Meta       `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Letting go", body.Data[0].LessonTitle)
	assert.Equal(t, "user@example.com", body.Data[0].ReporterEmail)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestHandler_DeleteIsAdminOnly(t *testing.T) {
	env := newTestEnv()
	rec := env.do(http.MethodPost, "/lessonsReports", "",
		`{"lessonId":"`+lessonID+`","reporterEmail":"a@example.com","reason":"spam"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data ReportResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	path := "/lessonsReports/" + created.Data.ID

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodDelete, path, "", "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodDelete, path, "user-token", "").Code)
	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, path, "admin-token", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path, "admin-token", "").Code)
}
