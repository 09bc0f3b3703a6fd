package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrSaveFailed    = errors.New("save failed")
	ErrLoadFailed    = errors.New("load failed")
	ErrInvalidConfig = errors.New("invalid store configuration")
	ErrUnknownDriver = errors.New("unknown store driver")
)
