// AngelaMos | 2026
// identity.go

// Package identity turns an opaque bearer credential issued by the external
// identity provider into a verified principal email.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/lessons-backend/internal/config"
	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// Verifier validates a bearer credential. Failures wrap core.ErrTokenInvalid,
// core.ErrTokenExpired or core.ErrUpstreamUnavailable.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

func New(ctx context.Context, cfg config.IdentityConfig) (Verifier, error) {
	switch cfg.Provider {
	case config.IdentityProviderFirebase:
		return NewFirebaseVerifier(ctx, cfg)
	case config.IdentityProviderJWKS:
		keys, err := NewRemoteKeySource(ctx, cfg.JWKSURL, minKeyRefresh)
		if err != nil {
			return nil, err
		}
		return NewJWKSVerifier(keys, cfg.ProjectID), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func requireEmail(id *Identity) (*Identity, error) {
	id.Email = normalizeEmail(id.Email)
	if id.Email == "" {
		return nil, fmt.Errorf("verify token: missing email claim: %w", core.ErrTokenInvalid)
	}
	return id, nil
}
