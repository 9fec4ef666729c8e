package authn

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matthews-wong/setaside-be/internal/api"
	"github.com/matthews-wong/setaside-be/internal/apperr"
)

// AccountSource answers whether an account is still active. Tokens outlive
// deactivation, so every authenticated request re-checks the account.
type AccountSource interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// Middleware authenticates bearer tokens and gates routes by role.
type Middleware struct {
	tokens   *Tokens
	accounts AccountSource
	logger   zerolog.Logger
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(tokens *Tokens, accounts AccountSource, logger zerolog.Logger) *Middleware {
	return &Middleware{
		tokens:   tokens,
		accounts: accounts,
		logger:   logger.With().Str("component", "authn").Logger(),
	}
}

// Authenticate requires a valid bearer token and an active account, and puts
// the caller's Identity into the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			api.RespondError(w, apperr.New(apperr.KindUnauthenticated, "missing bearer token"))
			return
		}

		identity, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Warn().Str("path", r.URL.Path).Msg("rejected bearer token")
			api.RespondError(w, err)
			return
		}

		active, err := m.accounts.IsActive(r.Context(), identity.ID)
		if err != nil || !active {
			api.RespondError(w, apperr.New(apperr.KindUnauthenticated, "account is deactivated"))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireRoles rejects authenticated callers whose role is not in the
// allowed set. Must run after Authenticate.
func (m *Middleware) RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := FromContext(r.Context())
			if !ok {
				api.RespondError(w, apperr.New(apperr.KindUnauthenticated, "missing bearer token"))
				return
			}
			if !allowed[identity.Role] {
				api.RespondError(w, apperr.New(apperr.KindForbidden, "insufficient role for this action"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff is shorthand for RequireRoles(cashier, admin).
func (m *Middleware) RequireStaff() func(http.Handler) http.Handler {
	return m.RequireRoles(RoleCashier, RoleAdmin)
}

// RequestLogger logs each request with method, path, status and duration.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
