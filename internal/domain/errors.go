package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
)

// ErrAlreadyPaid indicates the order's paid flag was already set.
var ErrAlreadyPaid = errors.New("order already paid")
