// AngelaMos | 2026
// firebase.go

package identity

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/carterperez-dev/templates/lessons-backend/internal/config"
	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier checks ID tokens with the Firebase Admin SDK.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(
	ctx context.Context,
	cfg config.IdentityConfig,
) (*FirebaseVerifier, error) {
	creds, err := base64.StdEncoding.DecodeString(cfg.ServiceKey)
	if err != nil {
		return nil, fmt.Errorf("decode firebase service key: %w", err)
	}

	app, err := firebase.NewApp(
		ctx,
		&firebase.Config{ProjectID: cfg.ProjectID},
		option.WithCredentialsJSON(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(
	ctx context.Context,
	token string,
) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("verify token: empty token: %w", core.ErrTokenInvalid)
	}

	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		switch {
		case fbauth.IsIDTokenExpired(err):
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		case fbauth.IsCertificateFetchFailed(err):
			return nil, fmt.Errorf("verify token: %v: %w", err, core.ErrUpstreamUnavailable)
		default:
			return nil, fmt.Errorf("verify token: %v: %w", err, core.ErrTokenInvalid)
		}
	}

	return requireEmail(&Identity{
		UID:     tok.UID,
		Email:   stringClaim(tok.Claims, "email"),
		Name:    stringClaim(tok.Claims, "name"),
		Picture: stringClaim(tok.Claims, "picture"),
	})
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
