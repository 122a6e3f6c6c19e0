// AngelaMos | 2026
// firebase_test.go

package identity

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type fakeIDTokenVerifier struct {
	token *fbauth.Token
	err   error
}

func (f *fakeIDTokenVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier_ExtractsClaims(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeIDTokenVerifier{
		token: &fbauth.Token{
			UID: "uid-7",
			Claims: map[string]any{
				"email":   " Writer@Example.com ",
				"name":    "Writer",
				"picture": "https://img.example.com/w.png",
			},
		},
	}}

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, "uid-7", id.UID)
	assert.Equal(t, "writer@example.com", id.Email)
	assert.Equal(t, "Writer", id.Name)
	assert.Equal(t, "https://img.example.com/w.png", id.Picture)
}

func TestFirebaseVerifier_RejectedToken(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeIDTokenVerifier{err: errors.New("bad signature")}}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestFirebaseVerifier_NoEmailClaim(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeIDTokenVerifier{
		token: &fbauth.Token{UID: "uid-7", Claims: map[string]any{}},
	}}

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestFirebaseVerifier_EmptyToken(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeIDTokenVerifier{}}

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
