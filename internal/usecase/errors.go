package usecase

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrProfileMissing = errors.New("candidate profile not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrInteractionLog = errors.New("interaction log unavailable")
	ErrInternal       = errors.New("internal error")
)
