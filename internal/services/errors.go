package services

import "errors"

// ValidationError is a user-facing input problem detected before any
// network call.
type ValidationError struct {
	Title       string
	Description string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Description
}

var (
	ErrProfileRequiredFields = &ValidationError{
		Title:       "Required fields missing",
		Description: "Please fill in your name and email address.",
	}
	ErrSkillsRequired = &ValidationError{
		Title:       "Skills required",
		Description: "Please add at least one skill.",
	}
	ErrAuthRequiredFields = &ValidationError{
		Title:       "Required fields missing",
		Description: "Please fill in email and password.",
	}
	ErrNameRequired = &ValidationError{
		Title:       "Name required",
		Description: "Please enter your full name.",
	}
	ErrPasswordMismatch = &ValidationError{
		Title:       "Passwords don't match",
		Description: "Please make sure both passwords are identical.",
	}
	ErrPasswordTooShort = &ValidationError{
		Title:       "Password too short",
		Description: "Password must be at least 6 characters long.",
	}
)

var (
	ErrRequestInFlight    = errors.New("request already in flight")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInternshipNotFound = errors.New("internship not found in current results")
	ErrUnknownTab         = errors.New("unknown dashboard tab")
	ErrSessionNotFound    = errors.New("session not found")
)
