package chat

import "errors"

var (
	ErrChatNotFound      = errors.New("chat not found")
	ErrInvalidType       = errors.New("invalid chat type")
	ErrInvalidStatus     = errors.New("invalid chat status")
	ErrMissingOwner      = errors.New("chat must belong to a bot and an owner")
	ErrMissingTelegramID = errors.New("chat must carry a telegram chat id")
)
