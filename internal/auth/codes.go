package auth

import "errors"

// Code maps an auth error to the key of its human readable message.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "auth.user_not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "auth.invalid_credentials"
	case errors.Is(err, ErrEmailTaken):
		return "auth.email_taken"
	case errors.Is(err, ErrWeakPassword):
		return "auth.weak_password"
	case errors.Is(err, ErrInvalidEmail):
		return "auth.invalid_email"
	case errors.Is(err, ErrSessionExpired):
		return "auth.session_expired"
	default:
		return "auth.failed"
	}
}
