package reconciler

import (
	"context"

	"chatwarden/internal/infrastructure/telegram"
)

// BotAPI is the slice of the Bot API the engine consumes. The production
// implementation is telegram.Client; tests substitute a scripted fake.
type BotAPI interface {
	GetChat(ctx context.Context, chatID int64) (*telegram.Chat, telegram.Status, error)
	GetChatAdministrators(ctx context.Context, chatID int64) ([]telegram.ChatMember, telegram.Status, error)
	GetChatMembersCount(ctx context.Context, chatID int64) (int, telegram.Status, error)
	GetChatMember(ctx context.Context, chatID, userID int64) (*telegram.ChatMember, telegram.Status, error)
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, telegram.Status, error)
	SendMessage(ctx context.Context, chatID int64, text string) (telegram.Status, error)
	KickChatMember(ctx context.Context, chatID, userID int64) (telegram.Status, error)
}

// APIFactory builds a BotAPI for one bot token. Clients are stateless, so a
// fresh one per sweep is fine.
type APIFactory func(token string) BotAPI

// NewClientFactory returns the production factory bound to one API host.
func NewClientFactory(host string) APIFactory {
	return func(token string) BotAPI {
		return telegram.NewClient(host, token)
	}
}
