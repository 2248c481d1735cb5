package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatwarden/internal/domain/chat"
	"chatwarden/internal/infrastructure/persistence/mappers"
	"chatwarden/internal/infrastructure/persistence/models"
	"chatwarden/internal/shared/logger"
)

// ChatRepositoryImpl implements the chat.Repository interface.
type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ChatMapper
	logger logger.Interface
}

// NewChatRepository creates a new chat repository instance.
func NewChatRepository(db *gorm.DB, logger logger.Interface) chat.Repository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mappers.NewChatMapper(),
		logger: logger,
	}
}

// Create inserts a first-contact chat record.
func (r *ChatRepositoryImpl) Create(ctx context.Context, c *chat.Chat) error {
	model := r.mapper.ToModel(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create chat",
			"bot_id", c.BotID(),
			"telegram_chat_id", c.TelegramChatID(),
			"error", err)
		return fmt.Errorf("failed to create chat: %w", err)
	}

	c.SetID(model.ID)
	r.logger.Infow("chat created",
		"chat_id", model.ID,
		"bot_id", model.BotID,
		"telegram_chat_id", model.TelegramChatID)
	return nil
}

// Update persists the reconciliation-owned chat fields.
func (r *ChatRepositoryImpl) Update(ctx context.Context, c *chat.Chat) error {
	model := r.mapper.ToModel(c)

	result := r.db.WithContext(ctx).Model(&models.ChatModel{}).
		Where("chat_id = ?", model.ID).
		Updates(map[string]any{
			"type_id":      model.TypeID,
			"status_id":    model.StatusID,
			"title":        model.Title,
			"user_num":     model.UserNum,
			"unknown_user": model.UnknownUser,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update chat", "chat_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update chat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return chat.ErrChatNotFound
	}
	return nil
}

// FindByID retrieves one chat by primary key.
func (r *ChatRepositoryImpl) FindByID(ctx context.Context, id uint) (*chat.Chat, error) {
	var model models.ChatModel
	if err := r.db.WithContext(ctx).First(&model, "chat_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrChatNotFound
		}
		r.logger.Errorw("failed to find chat", "chat_id", id, "error", err)
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// FindByBotAndTelegramID locates one bot's row for a remote chat.
func (r *ChatRepositoryImpl) FindByBotAndTelegramID(ctx context.Context, botID uint, telegramChatID int64) (*chat.Chat, error) {
	var model models.ChatModel
	if err := r.db.WithContext(ctx).
		First(&model, "bot_id = ? AND telegram_chat_id = ?", botID, telegramChatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrChatNotFound
		}
		r.logger.Errorw("failed to find chat by telegram id",
			"bot_id", botID,
			"telegram_chat_id", telegramChatID,
			"error", err)
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByOwnerAndBot returns one bot's stored chats within the owner scope.
func (r *ChatRepositoryImpl) ListByOwnerAndBot(ctx context.Context, userID, botID uint) ([]*chat.Chat, error) {
	var rows []models.ChatModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND bot_id = ?", userID, botID).
		Order("chat_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list chats", "user_id", userID, "bot_id", botID, "error", err)
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return r.toDomainList(rows), nil
}

// ListByOwner returns all chats of one owner.
func (r *ChatRepositoryImpl) ListByOwner(ctx context.Context, userID uint) ([]*chat.Chat, error) {
	var rows []models.ChatModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("chat_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list chats", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return r.toDomainList(rows), nil
}

func (r *ChatRepositoryImpl) toDomainList(rows []models.ChatModel) []*chat.Chat {
	chats := make([]*chat.Chat, 0, len(rows))
	for i := range rows {
		chats = append(chats, r.mapper.ToDomain(&rows[i]))
	}
	return chats
}
