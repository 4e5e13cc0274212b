package service

import "errors"

// Sentinel errors the handler layer maps onto HTTP status codes.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidMode    = errors.New("unknown test mode")
	ErrMissingSubject = errors.New("subject id is required")
	ErrMissingTopic   = errors.New("topic id is required for a specific-topic test")
)
