package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/security"
	"scamsavvy/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordLogin      = errors.New("account uses an external sign-in provider")
)

// EmailSender delivers transactional email
type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

// AuthService handles registration, login, sessions and password resets
type AuthService struct {
	users           *repository.UserRepository
	resetTokens     *security.ResetTokenIssuer
	email           EmailSender
	sessionDuration time.Duration
	appBaseURL      string
}

// NewAuthService creates an auth service. email may be nil, in which case
// password-reset requests are logged instead of delivered.
func NewAuthService(users *repository.UserRepository, resetTokens *security.ResetTokenIssuer, email EmailSender, sessionDuration time.Duration, appBaseURL string) *AuthService {
	return &AuthService{
		users:           users,
		resetTokens:     resetTokens,
		email:           email,
		sessionDuration: sessionDuration,
		appBaseURL:      appBaseURL,
	}
}

// Register creates a new account with a hashed password
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(username, email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and returns the matching user
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return nil, ErrPasswordLogin
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateSession starts a session for the user and returns its ID
func (s *AuthService) CreateSession(userID int64) (string, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	if _, err := s.users.CreateSession(sessionID, userID, expiresAt); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, nil
}

// ValidateSession resolves a session ID to its user. Expired sessions are
// deleted on sight. Returns nil for anything that doesn't resolve.
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.users.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.IsExpired() {
		if err := s.users.DeleteSession(sessionID); err != nil {
			log.Printf("failed to delete expired session: %v", err)
		}
		return nil, nil
	}

	user, err := s.users.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session user: %w", err)
	}
	return user, nil
}

// Logout ends a session
func (s *AuthService) Logout(sessionID string) error {
	return s.users.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes sessions past their expiry
func (s *AuthService) CleanupExpiredSessions() error {
	return s.users.DeleteExpiredSessions()
}

// SessionDuration returns the configured session lifetime
func (s *AuthService) SessionDuration() time.Duration {
	return s.sessionDuration
}

// GoogleProfile is the subset of a Google account used for sign-in
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// LoginWithGoogle signs a Google account in, linking or creating a local
// user as needed
func (s *AuthService) LoginWithGoogle(profile GoogleProfile) (*models.User, error) {
	if profile.Subject == "" || profile.Email == "" {
		return nil, fmt.Errorf("incomplete google profile")
	}

	user, err := s.users.GetUserByOAuth("google", profile.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	// Link by email if an account already exists
	user, err = s.users.GetUserByEmail(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if user != nil {
		if err := s.users.LinkOAuthProvider(user.ID, "google", profile.Subject); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		return user, nil
	}

	username := profile.Name
	if err := validation.ValidateUsername(username); err != nil {
		username = "player-" + profile.Subject[:min(8, len(profile.Subject))]
	}

	user, err = s.users.CreateUser(username, profile.Email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	if err := s.users.LinkOAuthProvider(user.ID, "google", profile.Subject); err != nil {
		return nil, fmt.Errorf("failed to link google account: %w", err)
	}
	if profile.Picture != "" {
		if err := s.users.UpdateProfile(user.ID, user.Username, profile.Picture); err != nil {
			log.Printf("failed to store google profile picture: %v", err)
		} else {
			user.ProfileImageURL = profile.Picture
		}
	}
	return user, nil
}

// RequestPasswordReset emails a signed reset link to the address, if it
// belongs to an account. Unknown addresses are ignored silently so the
// endpoint can't be used to probe for registered emails.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil
	}

	token, _, err := s.resetTokens.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	link := s.appBaseURL + "/reset-password?token=" + token
	if s.email == nil {
		log.Printf("password reset requested for %s: %s", email, link)
		return nil
	}
	if err := s.email.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword verifies a reset token, burns it, and sets the new password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	userID, tokenID, err := s.resetTokens.Verify(token)
	if err != nil {
		return err
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	// Tokens are single use; burn before updating
	if err := s.users.MarkResetTokenUsed(tokenID, userID); err != nil {
		return security.ErrInvalidResetToken
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
