package bot

import "context"

type Repository interface {
	Create(ctx context.Context, b *Bot) error
	Update(ctx context.Context, b *Bot) error
	FindByID(ctx context.Context, id uint) (*Bot, error)
	// ListActiveByOwner returns the active bots of one owner, the unit the
	// reconciliation sweep iterates.
	ListActiveByOwner(ctx context.Context, userID uint) ([]*Bot, error)
	ListByOwner(ctx context.Context, userID uint) ([]*Bot, error)
}
