package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"scamsavvy/internal/security"
	"scamsavvy/internal/service"
)

const oauthStateCookieName = "oauth_state"

// OAuthHandler drives the Google sign-in flow
type OAuthHandler struct {
	authService *service.AuthService
	google      *service.GoogleOAuth
}

// NewOAuthHandler creates a new OAuth handler. google may be nil when
// sign-in with Google is not configured.
func NewOAuthHandler(authService *service.AuthService, google *service.GoogleOAuth) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		google:      google,
	}
}

func newOAuthState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GoogleLogin redirects the browser to Google's consent page
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		http.NotFound(w, r)
		return
	}

	state, err := newOAuthState()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error generating oauth state", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthURL(state), http.StatusSeeOther)
}

// GoogleCallback completes the sign-in after Google redirects back
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		http.NotFound(w, r)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, oauthStateCookieName))

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Google sign-in failed", "Error exchanging oauth code", err)
		return
	}

	user, err := h.authService.LoginWithGoogle(profile)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error signing in google user", err)
		return
	}

	sessionID, err := h.authService.CreateSession(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating session", err)
		return
	}

	expires := time.Now().Add(h.authService.SessionDuration())
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, sessionID, expires))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
