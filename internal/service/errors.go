package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("resource belongs to another user")
	ErrInvalidStatus     = errors.New("status must be one of draft, scheduled, published")
	ErrInvalidEngagement = errors.New("engagement counts must be non-negative")
	ErrInvalidInput      = errors.New("invalid input")
)
