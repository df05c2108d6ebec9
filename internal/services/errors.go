package services

import "errors"

// Sentinel errors services return so handlers can map them onto HTTP
// statuses without inspecting message text.
var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrValidation       = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrUpstream         = errors.New("upstream provider error")
)
