package dto

import (
	"time"

	"chatwarden/internal/domain/bot"
)

// BotDTO is the outward representation of a bot. The token is write-only and
// never serialized back.
type BotDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	TelegramUserID int64     `json:"telegram_user_id"`
	Name           string    `json:"name,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToBotDTO(b *bot.Bot) *BotDTO {
	if b == nil {
		return nil
	}
	return &BotDTO{
		ID:             b.ID(),
		UserID:         b.UserID(),
		TelegramUserID: b.TelegramUserID(),
		Name:           b.Name(),
		IsActive:       b.IsActive(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func ToBotDTOs(bots []*bot.Bot) []*BotDTO {
	out := make([]*BotDTO, 0, len(bots))
	for _, b := range bots {
		out = append(out, ToBotDTO(b))
	}
	return out
}
