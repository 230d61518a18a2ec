package auth

import "coderr/internal/pkg/apperr"

// ErrInvalidToken is returned for bearer strings that do not resolve to an
// active user.
var ErrInvalidToken = apperr.ErrInvalidToken

func errInvalidCredentials() error {
	return apperr.NewValidation("detail", "Invalid credentials.")
}
