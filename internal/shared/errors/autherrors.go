package errors

import "net/http"

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountLocked      ErrorType = "account_locked"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// NewInvalidCredentialsError is returned on a login/password mismatch. The
// message is deliberately identical for unknown logins and wrong passwords.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidCredentials,
		Message: "invalid login or password",
		Code:    http.StatusUnauthorized,
	}
}

// NewAccountLockedError is returned while a lockout window is in effect.
func NewAccountLockedError() *AppError {
	return &AppError{
		Type:    ErrorTypeAccountLocked,
		Message: "account temporarily locked after repeated failures",
		Code:    http.StatusUnauthorized,
	}
}

// NewAccountInactiveError is returned for deactivated owner accounts.
func NewAccountInactiveError() *AppError {
	return &AppError{
		Type:    ErrorTypeAccountInactive,
		Message: "account is inactive",
		Code:    http.StatusUnauthorized,
	}
}

// NewTokenExpiredError is returned when a JWT is past its expiry.
func NewTokenExpiredError() *AppError {
	return &AppError{
		Type:    ErrorTypeTokenExpired,
		Message: "token has expired",
		Code:    http.StatusUnauthorized,
	}
}

// NewTokenInvalidError is returned when a JWT fails verification.
func NewTokenInvalidError(details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeTokenInvalid,
		Message: "token is invalid",
		Code:    http.StatusUnauthorized,
		Details: detail,
	}
}
