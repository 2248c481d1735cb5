package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	// FindByTelegramID matches on (user_id, telegram_user_id), the primary
	// identity key.
	FindByTelegramID(ctx context.Context, userID uint, telegramUserID int64) (*Employee, error)
	// FindByUsername matches on (user_id, telegram_username),
	// case-insensitively, the secondary identity key.
	FindByUsername(ctx context.Context, userID uint, username string) (*Employee, error)
	ListByOwner(ctx context.Context, userID uint) ([]*Employee, error)
	ListActiveByOwner(ctx context.Context, userID uint) ([]*Employee, error)
}

type LinkRepository interface {
	// Upsert inserts or refreshes a link on its (chat_id, employee_id)
	// natural key so interleaved writers cannot duplicate it.
	Upsert(ctx context.Context, l *Link) error
	Update(ctx context.Context, l *Link) error
	// Delete removes a link permanently; only enforcement calls this.
	Delete(ctx context.Context, chatID, employeeID uint) error
	FindByChatAndEmployee(ctx context.Context, chatID, employeeID uint) (*Link, error)
	ListByChat(ctx context.Context, chatID uint) ([]*Link, error)
	CountActiveByChat(ctx context.Context, chatID uint) (int, error)
	ListByOwner(ctx context.Context, userID uint) ([]*Link, error)
}
