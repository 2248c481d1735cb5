package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatwarden/internal/domain/bot"
	"chatwarden/internal/infrastructure/persistence/mappers"
	"chatwarden/internal/infrastructure/persistence/models"
	"chatwarden/internal/shared/logger"
)

// BotRepositoryImpl implements the bot.Repository interface.
type BotRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BotMapper
	logger logger.Interface
}

// NewBotRepository creates a new bot repository instance.
func NewBotRepository(db *gorm.DB, logger logger.Interface) bot.Repository {
	return &BotRepositoryImpl{
		db:     db,
		mapper: mappers.NewBotMapper(),
		logger: logger,
	}
}

// Create inserts a new bot credential.
func (r *BotRepositoryImpl) Create(ctx context.Context, b *bot.Bot) error {
	model := r.mapper.ToModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create bot", "user_id", b.UserID(), "error", err)
		return fmt.Errorf("failed to create bot: %w", err)
	}

	b.SetID(model.ID)
	r.logger.Infow("bot created", "bot_id", model.ID, "user_id", model.UserID, "bot_name", model.BotName)
	return nil
}

// Update persists all mutable bot fields.
func (r *BotRepositoryImpl) Update(ctx context.Context, b *bot.Bot) error {
	model := r.mapper.ToModel(b)

	result := r.db.WithContext(ctx).Model(&models.BotModel{}).
		Where("bot_id = ?", model.ID).
		Updates(map[string]any{
			"bot_token":        model.BotToken,
			"telegram_user_id": model.TelegramUserID,
			"bot_name":         model.BotName,
			"is_active":        model.IsActive,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update bot", "bot_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update bot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return bot.ErrBotNotFound
	}
	return nil
}

// FindByID retrieves one bot by primary key.
func (r *BotRepositoryImpl) FindByID(ctx context.Context, id uint) (*bot.Bot, error) {
	var model models.BotModel
	if err := r.db.WithContext(ctx).First(&model, "bot_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bot.ErrBotNotFound
		}
		r.logger.Errorw("failed to find bot", "bot_id", id, "error", err)
		return nil, fmt.Errorf("failed to find bot: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListActiveByOwner returns the active bots of one owner.
func (r *BotRepositoryImpl) ListActiveByOwner(ctx context.Context, userID uint) ([]*bot.Bot, error) {
	var rows []models.BotModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("bot_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list active bots", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list active bots: %w", err)
	}
	return r.toDomainList(rows), nil
}

// ListByOwner returns all bots of one owner.
func (r *BotRepositoryImpl) ListByOwner(ctx context.Context, userID uint) ([]*bot.Bot, error) {
	var rows []models.BotModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("bot_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list bots", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	return r.toDomainList(rows), nil
}

func (r *BotRepositoryImpl) toDomainList(rows []models.BotModel) []*bot.Bot {
	bots := make([]*bot.Bot, 0, len(rows))
	for i := range rows {
		bots = append(bots, r.mapper.ToDomain(&rows[i]))
	}
	return bots
}
