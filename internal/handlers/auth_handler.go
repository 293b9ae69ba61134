package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"scamsavvy/internal/security"
	"scamsavvy/internal/service"
	"scamsavvy/internal/validation"
)

// AuthHandler handles signup, login, logout and password resets
type AuthHandler struct {
	authService *service.AuthService
	templates   *template.Template
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, templates *template.Template) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		templates:   templates,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	expires := time.Now().Add(h.authService.SessionDuration())
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, sessionID, expires))
}

// ShowLogin renders the login form
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if GetUserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := AuthViewData{BaseViewData: BaseViewData{Title: "Log In - ScamSavvy"}}
	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering login template", err)
	}
}

// Login processes a login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.authService.Login(email, password)
	if err != nil {
		message := "Invalid email or password"
		if errors.Is(err, service.ErrPasswordLogin) {
			message = "This account signs in with Google"
		} else if !errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error during login", err)
			return
		}

		data := AuthViewData{
			BaseViewData: BaseViewData{Title: "Log In - ScamSavvy", Error: message},
			Email:        email,
		}
		w.WriteHeader(http.StatusUnauthorized)
		if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
			log.Printf("Error rendering login template: %v", err)
		}
		return
	}

	sessionID, err := h.authService.CreateSession(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating session", err)
		return
	}

	h.setSessionCookie(w, r, sessionID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowRegister renders the signup form
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if GetUserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := AuthViewData{BaseViewData: BaseViewData{Title: "Sign Up - ScamSavvy"}}
	if err := h.templates.ExecuteTemplate(w, "register.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering register template", err)
	}
}

// Register processes a signup form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.authService.Register(username, email, password)
	if err != nil {
		message := "Could not create your account"
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			message = validationErr.Message
		} else if errors.Is(err, service.ErrEmailTaken) {
			message = "That email is already registered"
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error during registration", err)
			return
		}

		data := AuthViewData{
			BaseViewData: BaseViewData{Title: "Sign Up - ScamSavvy", Error: message},
			Email:        email,
			Username:     username,
		}
		w.WriteHeader(http.StatusBadRequest)
		if err := h.templates.ExecuteTemplate(w, "register.tmpl", data); err != nil {
			log.Printf("Error rendering register template: %v", err)
		}
		return
	}

	sessionID, err := h.authService.CreateSession(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating session", err)
		return
	}

	h.setSessionCookie(w, r, sessionID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowForgotPassword renders the reset request form
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	data := BaseViewData{Title: "Forgot Password - ScamSavvy"}
	if err := h.templates.ExecuteTemplate(w, "forgot_password.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering forgot password template", err)
	}
}

// ForgotPassword emails a reset link. The response is identical whether or
// not the address is registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if err := h.authService.RequestPasswordReset(r.Context(), email); err != nil {
		log.Printf("Error requesting password reset: %v", err)
	}

	data := BaseViewData{
		Title: "Forgot Password - ScamSavvy",
		Flash: "If that email is registered, a reset link is on its way.",
	}
	if err := h.templates.ExecuteTemplate(w, "forgot_password.tmpl", data); err != nil {
		log.Printf("Error rendering forgot password template: %v", err)
	}
}

// ShowResetPassword renders the new-password form for a reset link
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	data := ResetViewData{
		BaseViewData: BaseViewData{Title: "Reset Password - ScamSavvy"},
		Token:        token,
	}
	if err := h.templates.ExecuteTemplate(w, "reset_password.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering reset password template", err)
	}
}

// ResetPassword sets a new password from a valid reset token
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")

	if err := h.authService.ResetPassword(token, password); err != nil {
		message := "That reset link is invalid or has expired"
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			message = validationErr.Message
		} else if !errors.Is(err, security.ErrInvalidResetToken) {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error resetting password", err)
			return
		}

		data := ResetViewData{
			BaseViewData: BaseViewData{Title: "Reset Password - ScamSavvy", Error: message},
			Token:        token,
		}
		w.WriteHeader(http.StatusBadRequest)
		if err := h.templates.ExecuteTemplate(w, "reset_password.tmpl", data); err != nil {
			log.Printf("Error rendering reset password template: %v", err)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
