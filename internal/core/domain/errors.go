package domain

import "errors"

var (
	ErrMissingTargetURL = errors.New("target URL is required")
	ErrInvalidURL       = errors.New("invalid URL format")
	ErrInvalidCode      = errors.New("invalid code format")
	ErrCodeTaken        = errors.New("short code already taken")
	ErrCodeExhausted    = errors.New("failed to generate unique code")
	ErrNotFound         = errors.New("link not found")

	// ErrDuplicateCode is returned by repositories when the unique constraint
	// on code rejects a write. The service maps it to ErrCodeTaken or retries.
	ErrDuplicateCode = errors.New("duplicate short code")
)
