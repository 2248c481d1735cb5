package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrLinkNotFound     = errors.New("chat membership link not found")
	ErrMissingOwner     = errors.New("record must belong to an owner")
	ErrNoIdentity       = errors.New("employee needs a name, telegram id or username")
	ErrIncompleteLink   = errors.New("link needs both chat and employee")
)
