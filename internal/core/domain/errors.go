package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates a wrong username/password or OTP
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrServiceUnavailable indicates an external model service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrIntegrity indicates the passage index or an embedding violates its
	// shape contract. Never degrade silently on this error.
	ErrIntegrity = errors.New("index integrity fault")

	// ErrTranslationFailed indicates the translation model could not be loaded or run
	ErrTranslationFailed = errors.New("translation failed")

	// ErrCacheMiss indicates the answer cache holds no entry for the key
	ErrCacheMiss = errors.New("cache miss")
)
