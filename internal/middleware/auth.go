// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/identity"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type contextKey string

const (
	UserEmailKey contextKey = "user_email"
	ActorKey     contextKey = "actor"
	IdentityKey  contextKey = "identity"
)

// PrincipalLookup resolves the stored role and entitlement for a verified
// email. user.Service satisfies it.
type PrincipalLookup interface {
	Lookup(ctx context.Context, email string) (policy.Actor, error)
}

func Authenticator(
	verifier identity.Verifier,
	principals PrincipalLookup,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx, err := withPrincipal(r.Context(), id, principals)
			if err != nil {
				core.InternalServerError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the principal when a valid token is presented and
// lets anonymous requests through untouched.
func OptionalAuth(
	verifier identity.Verifier,
	principals PrincipalLookup,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token != "" {
				id, err := verifier.Verify(r.Context(), token)
				if err == nil {
					ctx, lookupErr := withPrincipal(r.Context(), id, principals)
					if lookupErr != nil {
						slog.WarnContext(r.Context(), "optional auth lookup failed",
							"error", lookupErr,
						)
					} else {
						r = r.WithContext(ctx)
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withPrincipal(
	ctx context.Context,
	id *identity.Identity,
	principals PrincipalLookup,
) (context.Context, error) {
	actor, err := principals.Lookup(ctx, id.Email)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, UserEmailKey, id.Email)
	ctx = context.WithValue(ctx, IdentityKey, id)
	ctx = context.WithValue(ctx, ActorKey, actor)
	return ctx, nil
}

// Require gates a route group on a policy operation that has no resource
// of its own, such as the admin-only moderation endpoints. Mount it after
// Authenticator.
func Require(op policy.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := GetActor(r.Context())

			if !actor.Authenticated() {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if decision := policy.Decide(op, actor, policy.Resource{}); !decision.Allowed {
				core.Forbidden(w, decision.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrUpstreamUnavailable):
		core.JSONError(w, err)
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetActor returns the anonymous actor when no principal is attached.
func GetActor(ctx context.Context) policy.Actor {
	if actor, ok := ctx.Value(ActorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Actor{}
}

func GetIdentity(ctx context.Context) *identity.Identity {
	if id, ok := ctx.Value(IdentityKey).(*identity.Identity); ok {
		return id
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserEmail(ctx) != ""
}

// WithActor attaches a principal without token verification.
func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	ctx = context.WithValue(ctx, UserEmailKey, actor.Email)
	return context.WithValue(ctx, ActorKey, actor)
}
