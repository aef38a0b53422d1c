package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"surveyform/internal/model"
	"surveyform/internal/service"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware provides session-token authentication
type AuthMiddleware struct {
	authSvc *service.AuthService
	log     *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc, log: log}
}

// RequireUser validates the bearer token against its live session
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		p, err := m.authSvc.Authenticate(r.Context(), token)
		if errors.Is(err, model.ErrInvalidToken) {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		if err != nil {
			m.log.Error("session lookup failed", zap.Error(err))
			http.Error(w, `{"error":"session store unavailable"}`, http.StatusServiceUnavailable)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// WithPrincipal stores the authenticated caller in ctx
func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated caller from context, or nil
func GetPrincipal(ctx context.Context) *model.Principal {
	if p, ok := ctx.Value(principalKey).(*model.Principal); ok {
		return p
	}
	return nil
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
