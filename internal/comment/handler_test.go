// AngelaMos | 2026
// handler_test.go

package comment

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

	"github.com/carterperez-dev/templates/lessons-backend/internal/identity"
	"github.com/carterperez-dev/templates/lessons-backend/internal/middleware"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type anyPrincipal struct{}

func (anyPrincipal) Lookup(_ context.Context, email string) (policy.Actor, error) {
	return policy.Actor{Email: email, Role: policy.RoleUser}, nil
}

func newTestRouter() http.Handler {
	svc, _ := newTestService()
	verifier := identity.NewStaticVerifier(map[string]identity.Identity{
		"reader-token": {Email: authorMail},
	})

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.OptionalAuth(verifier, anyPrincipal{}))
	return r
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAndList(t *testing.T) {
	h := newTestRouter()

	rec := do(h, http.MethodPost, "/comments", "",
		`{"lessonId":"`+lessonID+`","authorEmail":"anon@example.com","comment":"older"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/comments", "reader-token",
		`{"lessonId":"`+lessonID+`","authorEmail":"spoof@example.com","comment":"newer"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodGet, "/comments/"+lessonID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []CommentResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, "newer", env.Data[0].Body)
	assert.Equal(t, authorMail, env.Data[0].AuthorEmail)
	assert.Equal(t, "anon@example.com", env.Data[1].AuthorEmail)
}

func TestHandler_CreateValidation(t *testing.T) {
	h := newTestRouter()

	cases := map[string]struct {
		body string
		code int
	}{
		"no body text":   {`{"lessonId":"` + lessonID + `","authorEmail":"a@example.com"}`, http.StatusBadRequest},
		"blank text":     {`{"lessonId":"` + lessonID + `","authorEmail":"a@example.com","comment":"   "}`, http.StatusBadRequest},
		"no author":      {`{"lessonId":"` + lessonID + `","comment":"x"}`, http.StatusBadRequest},
		"bad lesson id":  {`{"lessonId":"nope","authorEmail":"a@example.com","comment":"x"}`, http.StatusBadRequest},
		"missing lesson": {`{"lessonId":"` + missingID + `","authorEmail":"a@example.com","comment":"x"}`, http.StatusNotFound},
		"malformed":      {`{`, http.StatusBadRequest},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/comments", "", tc.body)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestHandler_ListUnknownLesson(t *testing.T) {
	h := newTestRouter()

	rec := do(h, http.MethodGet, "/comments/"+missingID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodGet, "/comments/"+otherID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}
