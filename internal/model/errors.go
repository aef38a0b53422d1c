package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingTitle           = errors.New("survey title is required")
	ErrNoQuestions            = errors.New("at least one question is required")
	ErrSurveyNotFound         = errors.New("survey not found")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrSessionNotFound        = errors.New("session not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("user with this email already exists")
	ErrMissingFields          = errors.New("name, email, and password are required")
	ErrMissingLoginFields     = errors.New("email and password are required")
	ErrInvalidEmail           = errors.New("please enter a valid email address")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters long")
)

// EmptyQuestionPromptError reports the first question whose prompt is blank
type EmptyQuestionPromptError struct {
	Index int
}

func (e *EmptyQuestionPromptError) Error() string {
	return fmt.Sprintf("question %d text is required", e.Index+1)
}

// RequiredFieldMissing marks a required question left unanswered
type RequiredFieldMissing struct {
	Index int `json:"index"`
}

func (v RequiredFieldMissing) String() string {
	return fmt.Sprintf("question %d is required", v.Index+1)
}

// ValidationFailedError carries every required-field violation of one submission
type ValidationFailedError struct {
	Violations []RequiredFieldMissing
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
