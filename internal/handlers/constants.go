package handlers

const (
	SessionCookieName = "session_id"
	PlayCookieName    = "play_session"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
	ErrNotFound            = "Not found"
)
