package domain

import "errors"

var (
	ErrMissingDocument   = errors.New("required document was not provided")
	ErrEmptyDocument     = errors.New("document is empty")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidCategory   = errors.New("invalid assessee category")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
)
