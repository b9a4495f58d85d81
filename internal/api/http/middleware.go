package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/logger"
	"invare-backend/internal/security"
	"invare-backend/internal/service"
)

type contextKey string

const (
	contextKeyActor     contextKey = "actor"
	contextKeyRequestID contextKey = "request_id"
)

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// actorFrom returns the authenticated actor, if the request carried a valid
// token.
func actorFrom(ctx context.Context) (service.Actor, bool) {
	actor, ok := ctx.Value(contextKeyActor).(service.Actor)
	return actor, ok
}

// RequestID tags each request with an id and logs it on completion.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id)))
		logger.WithRequest(id).Debug("request handled",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// Middleware carries the token manager the auth middlewares need.
type Middleware struct {
	tokenManager security.TokenManager
}

func NewMiddleware(tokenManager security.TokenManager) *Middleware {
	return &Middleware{tokenManager: tokenManager}
}

func (m *Middleware) claimsFromHeader(r *http.Request) (*security.UserClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperr.Unauthorized("authorization header is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperr.Unauthorized("authorization header must be a bearer token")
	}
	claims, err := m.tokenManager.ValidateToken(parts[1])
	if err != nil {
		if err == security.ErrExpiredToken {
			return nil, apperr.Unauthorized("token has expired")
		}
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}

// Authenticate rejects requests without a valid bearer token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromHeader(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		actor := service.Actor{ID: claims.UserID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyActor, actor)))
	})
}

// OptionalAuthenticate attaches an actor when a valid token is present and
// lets anonymous requests through. A present-but-invalid token is still
// rejected rather than silently downgraded.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.claimsFromHeader(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		actor := service.Actor{ID: claims.UserID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyActor, actor)))
	})
}

// RequireRole gates a route to the given roles. It assumes Authenticate ran
// first.
func (m *Middleware) RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := actorFrom(r.Context())
			if !ok {
				respondError(w, r, apperr.Unauthorized("authentication required"))
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, r, apperr.Forbidden("insufficient permissions"))
		})
	}
}
