// Package services defines the business logic for accounts, posts, and API
// keys. This file centralizes the service-level failure types so that they can
// be consistently returned by service methods and shaped into HTTP responses
// by the handler layer.
//
// Each failure type carries its own HTTP status and response messages, so the
// handler layer never needs per-error switch statements: it promotes whatever
// a service returns and writes the result.
package services

import (
	"net/http"

	"github.com/mkarlsen/go-posts-backend/internal/apperr"
)

// AuthError enumerates the predictable account and credential failures.
type AuthError int

const (
	// ErrInvalidCredentials is returned by Login when the email is unknown
	// or the password does not match.
	ErrInvalidCredentials AuthError = iota

	// ErrAuthenticationRequired is returned when a request carries neither a
	// session cookie nor an API key.
	ErrAuthenticationRequired

	// ErrInvalidSessionCookie is returned when a session cookie is present
	// but does not resolve to a live session.
	ErrInvalidSessionCookie

	// ErrInvalidAPIKey is returned when a bearer token is present but does
	// not resolve to an issued key.
	ErrInvalidAPIKey

	// ErrEmailTaken is returned by Register and UpdateMe when the email is
	// already claimed by another account.
	ErrEmailTaken

	// ErrUsernameTaken is returned by Register and UpdateMe when the
	// username is already claimed by another account.
	ErrUsernameTaken
)

// Error implements error.
func (e AuthError) Error() string {
	switch e {
	case ErrInvalidCredentials:
		return "invalid credentials"
	case ErrAuthenticationRequired:
		return "authentication required"
	case ErrInvalidSessionCookie:
		return "invalid session cookie"
	case ErrInvalidAPIKey:
		return "invalid API key"
	case ErrEmailTaken:
		return "email already taken"
	case ErrUsernameTaken:
		return "username already taken"
	default:
		return "authentication error"
	}
}

// Status implements apperr.Shape. Credential failures are 401, uniqueness
// conflicts are 409.
func (e AuthError) Status() int {
	switch e {
	case ErrEmailTaken, ErrUsernameTaken:
		return http.StatusConflict
	default:
		return http.StatusUnauthorized
	}
}

// Messages implements apperr.Shape.
func (e AuthError) Messages() []apperr.Message {
	return []apperr.Message{apperr.New(e.code())}
}

func (e AuthError) code() string {
	switch e {
	case ErrInvalidCredentials:
		return "invalid_credentials"
	case ErrAuthenticationRequired:
		return "authentication_required"
	case ErrInvalidSessionCookie:
		return "invalid_session_cookie"
	case ErrInvalidAPIKey:
		return "invalid_api_key"
	case ErrEmailTaken:
		return "email_taken"
	case ErrUsernameTaken:
		return "username_taken"
	default:
		return "authentication_error"
	}
}

// UnknownPostError indicates that the requested post does not exist or is not
// writable by the current user. The offending id is echoed in the response
// details.
type UnknownPostError struct {
	ID string
}

// Error implements error.
func (e UnknownPostError) Error() string { return "post not found: " + e.ID }

// Status implements apperr.Shape.
func (e UnknownPostError) Status() int { return http.StatusNotFound }

// Messages implements apperr.Shape.
func (e UnknownPostError) Messages() []apperr.Message {
	return []apperr.Message{apperr.New("post_not_found").WithDetail("post", e.ID)}
}

// UnknownKeyError indicates that the requested API key does not exist or
// belongs to another user.
type UnknownKeyError struct {
	ID string
}

// Error implements error.
func (e UnknownKeyError) Error() string { return "key not found: " + e.ID }

// Status implements apperr.Shape.
func (e UnknownKeyError) Status() int { return http.StatusNotFound }

// Messages implements apperr.Shape.
func (e UnknownKeyError) Messages() []apperr.Message {
	return []apperr.Message{apperr.New("unknown_key").WithDetail("key", e.ID)}
}
