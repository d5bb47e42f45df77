package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"foodforall/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRole   contextKey = "role"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the bearer token and adds the caller's identity to
// the request context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
			return
		}

		identity, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.logger.WithError(err).Debug("rejected bearer token")
			s.respondError(w, http.StatusUnauthorized, "Token is invalid or expired", "Unauthorized access")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyUserID, identity.UserID)
		ctx = context.WithValue(ctx, contextKeyRole, identity.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles wraps a handler with a role check. RequireAuth must run
// first.
func (s *Service) requireRoles(next http.HandlerFunc, roles ...types.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(contextKeyRole).(types.Role)
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Token is missing", "Unauthorized access")
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				next(w, r)
				return
			}
		}

		s.respondError(w, http.StatusForbidden, "Insufficient permissions", "Forbidden")
	}
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) identityFromContext(ctx context.Context) (Identity, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok || userID == "" {
		return Identity{}, false
	}

	role, ok := ctx.Value(contextKeyRole).(types.Role)
	if !ok {
		return Identity{}, false
	}

	return Identity{UserID: userID, Role: role}, true
}
