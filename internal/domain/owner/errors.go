package owner

import "errors"

var (
	ErrOwnerNotFound     = errors.New("owner not found")
	ErrLoginTaken        = errors.New("login already taken")
	ErrInvalidLogin      = errors.New("login must be at least 3 characters")
	ErrEmptyPasswordHash = errors.New("password hash must not be empty")
)
