package mappers

import (
	"chatwarden/internal/domain/bot"
	"chatwarden/internal/infrastructure/persistence/models"
)

// BotMapper handles conversion between Bot domain and model.
type BotMapper interface {
	// ToModel converts domain entity to GORM model.
	ToModel(b *bot.Bot) *models.BotModel

	// ToDomain converts GORM model to domain entity.
	ToDomain(model *models.BotModel) *bot.Bot
}

// BotMapperImpl is the concrete implementation of BotMapper.
type BotMapperImpl struct{}

// NewBotMapper creates a new BotMapper.
func NewBotMapper() BotMapper {
	return &BotMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *BotMapperImpl) ToModel(b *bot.Bot) *models.BotModel {
	return &models.BotModel{
		ID:             b.ID(),
		UserID:         b.UserID(),
		BotToken:       b.Token(),
		TelegramUserID: b.TelegramUserID(),
		BotName:        b.Name(),
		IsActive:       b.IsActive(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *BotMapperImpl) ToDomain(model *models.BotModel) *bot.Bot {
	return bot.ReconstructBot(
		model.ID,
		model.UserID,
		model.BotToken,
		model.BotName,
		model.TelegramUserID,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
