package bot

import "errors"

var (
	ErrBotNotFound  = errors.New("bot not found")
	ErrEmptyToken   = errors.New("bot token must not be empty")
	ErrMissingOwner = errors.New("bot must belong to an owner")
)
