package mappers

import (
	"gorm.io/datatypes"

	"chatwarden/internal/domain/chat"
	"chatwarden/internal/infrastructure/persistence/models"
)

// ChatMapper handles conversion between Chat domain and model.
type ChatMapper interface {
	// ToModel converts domain entity to GORM model.
	ToModel(c *chat.Chat) *models.ChatModel

	// ToDomain converts GORM model to domain entity.
	ToDomain(model *models.ChatModel) *chat.Chat
}

// ChatMapperImpl is the concrete implementation of ChatMapper.
type ChatMapperImpl struct{}

// NewChatMapper creates a new ChatMapper.
func NewChatMapper() ChatMapper {
	return &ChatMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *ChatMapperImpl) ToModel(c *chat.Chat) *models.ChatModel {
	return &models.ChatModel{
		ID:             c.ID(),
		BotID:          c.BotID(),
		UserID:         c.UserID(),
		TelegramChatID: c.TelegramChatID(),
		TypeID:         int(c.TypeID()),
		StatusID:       int(c.StatusID()),
		Title:          datatypes.NewJSONSlice(c.Titles()),
		UserNum:        c.UserNum(),
		UnknownUser:    c.UnknownUser(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *ChatMapperImpl) ToDomain(model *models.ChatModel) *chat.Chat {
	return chat.ReconstructChat(
		model.ID,
		model.BotID,
		model.UserID,
		model.TelegramChatID,
		chat.TypeID(model.TypeID),
		chat.StatusID(model.StatusID),
		model.Title,
		model.UserNum,
		model.UnknownUser,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
