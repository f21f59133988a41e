package apperrors

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionNotFound = errors.New("session not found")
)
