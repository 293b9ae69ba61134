package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidationError represents a validation error on a named field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 4 {
		return ValidationError{Field: "password", Message: "password must be at least 4 characters"}
	}
	if len(password) > 20 {
		return ValidationError{Field: "password", Message: "password cannot exceed 20 characters"}
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) < 3 {
		return ValidationError{Field: "username", Message: "username must be at least 3 characters"}
	}
	if len(username) > 20 {
		return ValidationError{Field: "username", Message: "username cannot exceed 20 characters"}
	}
	return nil
}

// ValidateSlug checks if a URL slug is valid (lowercase letters, digits, hyphens)
func ValidateSlug(slug string) error {
	if slug == "" {
		return ValidationError{Field: "slug", Message: "slug is required"}
	}
	if !slugRegex.MatchString(slug) {
		return ValidationError{Field: "slug", Message: "slug may only contain lowercase letters, digits and hyphens"}
	}
	return nil
}

// ValidateQuizQuestion checks a new quiz question's fields
func ValidateQuizQuestion(question string, options []string, correctIndex int, explanation string) error {
	if len(strings.TrimSpace(question)) < 10 {
		return ValidationError{Field: "question", Message: "question must be at least 10 characters"}
	}
	if len(options) != 3 {
		return ValidationError{Field: "options", Message: "exactly 3 options are required"}
	}
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return ValidationError{Field: "options", Message: "options cannot be empty"}
		}
	}
	if correctIndex < 0 || correctIndex > 2 {
		return ValidationError{Field: "correctIndex", Message: "correct index must be 0, 1 or 2"}
	}
	if len(strings.TrimSpace(explanation)) < 5 {
		return ValidationError{Field: "explanation", Message: "explanation must be at least 5 characters"}
	}
	return nil
}

// ValidateInfoPage checks an information page's fields
func ValidateInfoPage(title, slug, description, body string) error {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return ValidationError{Field: "title", Message: "title must be at least 3 characters"}
	}
	if len(title) > 100 {
		return ValidationError{Field: "title", Message: "title cannot exceed 100 characters"}
	}
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	description = strings.TrimSpace(description)
	if len(description) < 10 {
		return ValidationError{Field: "description", Message: "description must be at least 10 characters"}
	}
	if len(description) > 200 {
		return ValidationError{Field: "description", Message: "description cannot exceed 200 characters"}
	}
	if len(strings.TrimSpace(body)) < 10 {
		return ValidationError{Field: "body", Message: "body must be at least 10 characters"}
	}
	return nil
}
