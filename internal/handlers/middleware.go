package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scamsavvy/internal/models"
	"scamsavvy/internal/security"
	"scamsavvy/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	csrf        *security.CSRFGenerator
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, csrf *security.CSRFGenerator) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		csrf:        csrf,
	}
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// WithUser resolves the session cookie to a user, if any, and stores it in
// the request context. Pages that render differently for guests use this.
func (m *Middleware) WithUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next(w, r)
			return
		}

		user, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			log.Printf("session validation failed: %v", err)
			next(w, r)
			return
		}
		if user == nil {
			clearSessionCookie(w)
			next(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAuth is middleware that requires a valid session
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := m.authService.ValidateSession(cookie.Value)
		if err != nil || user == nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin requires a valid session belonging to an admin. Non-admins
// get a 404 rather than a hint that the page exists.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin() {
			http.NotFound(w, r)
			return
		}
		next(w, r)
	})
}

// FromGamePage gates an endpoint so it only answers requests whose Referer
// is one of the allowed game pages. Anything else gets a 404, making the
// endpoint invisible outside the games.
func FromGamePage(next http.HandlerFunc, allowedPaths ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		referer := r.Header.Get("Referer")
		if referer == "" {
			http.NotFound(w, r)
			return
		}

		parsed, err := url.Parse(referer)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		for _, allowed := range allowedPaths {
			if parsed.Path == allowed || strings.HasPrefix(parsed.Path, allowed+"/") {
				next(w, r)
				return
			}
		}
		http.NotFound(w, r)
	}
}

// CSRFProtect validates the CSRF token on state-changing form posts. The
// token is derived from the session cookie, so it must run inside
// RequireAuth.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Error(w, ErrUnauthorized, http.StatusForbidden)
			return
		}

		token := r.Header.Get("X-CSRF-Token")
		if token == "" {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				if err := r.ParseForm(); err != nil {
					http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
					return
				}
			}
			token = r.FormValue("csrf_token")
		}

		if !m.csrf.ValidateToken(cookie.Value, token) {
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the CSRF token for the request's session, or empty for
// guests
func (m *Middleware) CSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, err := m.csrf.GenerateToken(cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

// RateLimit rejects clients that exceed the limiter's budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
