package chat

import "context"

type Repository interface {
	Create(ctx context.Context, c *Chat) error
	Update(ctx context.Context, c *Chat) error
	FindByID(ctx context.Context, id uint) (*Chat, error)
	// FindByBotAndTelegramID locates one bot's row for a remote chat. Other
	// bots sharing the same telegram_chat_id have rows of their own.
	FindByBotAndTelegramID(ctx context.Context, botID uint, telegramChatID int64) (*Chat, error)
	ListByOwnerAndBot(ctx context.Context, userID, botID uint) ([]*Chat, error)
	ListByOwner(ctx context.Context, userID uint) ([]*Chat, error)
}
