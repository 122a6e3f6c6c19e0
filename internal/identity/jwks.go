// AngelaMos | 2026
// jwks.go

package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

const (
	minKeyRefresh  = 15 * time.Minute
	issuerPrefix   = "https://securetoken.google.com/"
	acceptableSkew = 30 * time.Second
)

type KeySource interface {
	KeySet(ctx context.Context) (jwk.Set, error)
}

// RemoteKeySource serves a published JWK set from a jwx cache that refreshes
// in the background, honouring the endpoint's cache headers but never more
// often than minRefresh. A failed refresh keeps the last good set.
type RemoteKeySource struct {
	url   string
	cache *jwk.Cache
}

// NewRemoteKeySource starts the refresh loop, which lives as long as ctx.
// Registration does not wait for the first fetch so startup survives an
// unreachable key endpoint.
func NewRemoteKeySource(
	ctx context.Context,
	url string,
	minRefresh time.Duration,
) (*RemoteKeySource, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("create jwks cache: %w", err)
	}

	err = cache.Register(ctx, url,
		jwk.WithMinInterval(minRefresh),
		jwk.WithWaitReady(false),
	)
	if err != nil {
		return nil, fmt.Errorf("register jwks url: %w", err)
	}

	return &RemoteKeySource{url: url, cache: cache}, nil
}

func (s *RemoteKeySource) KeySet(ctx context.Context) (jwk.Set, error) {
	set, err := s.cache.Lookup(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return set, nil
}

type StaticKeySource struct {
	Set jwk.Set
}

func (s StaticKeySource) KeySet(context.Context) (jwk.Set, error) {
	return s.Set, nil
}

// JWKSVerifier validates Firebase ID tokens locally against the published
// securetoken key set. It needs the project id but no service credential.
type JWKSVerifier struct {
	keys     KeySource
	issuer   string
	audience string
}

func NewJWKSVerifier(keys KeySource, projectID string) *JWKSVerifier {
	return &JWKSVerifier{
		keys:     keys,
		issuer:   issuerPrefix + projectID,
		audience: projectID,
	}
}

func (v *JWKSVerifier) Verify(
	ctx context.Context,
	token string,
) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("verify token: empty token: %w", core.ErrTokenInvalid)
	}

	set, err := v.keys.KeySet(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify token: %v: %w", err, core.ErrUpstreamUnavailable)
	}

	tok, err := jwt.Parse(
		[]byte(token),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithAcceptableSkew(acceptableSkew),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := tok.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("verify token: missing subject: %w", core.ErrTokenInvalid)
	}

	id := &Identity{UID: subject}
	if err := tok.Get("email", &id.Email); err != nil {
		return nil, fmt.Errorf("verify token: missing email claim: %w", core.ErrTokenInvalid)
	}
	//nolint:errcheck // optional profile claims
	_ = tok.Get("name", &id.Name)
	//nolint:errcheck // optional profile claims
	_ = tok.Get("picture", &id.Picture)

	return requireEmail(id)
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
