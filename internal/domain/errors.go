package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTitle      = errors.New("invalid title")
	ErrStorageFailure    = errors.New("storage failure")
	ErrGenerationFailure = errors.New("generation failure")
)
