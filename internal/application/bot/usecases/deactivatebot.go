package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/domain/bot"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// DeactivateBotUseCase takes a bot out of the reconciliation sweep without
// destroying its chats or membership history.
type DeactivateBotUseCase struct {
	bots   bot.Repository
	logger logger.Interface
}

func NewDeactivateBotUseCase(bots bot.Repository, logger logger.Interface) *DeactivateBotUseCase {
	return &DeactivateBotUseCase{bots: bots, logger: logger}
}

func (uc *DeactivateBotUseCase) Execute(ctx context.Context, ownerID, botID uint) error {
	existing, err := uc.bots.FindByID(ctx, botID)
	if err != nil {
		if err == bot.ErrBotNotFound {
			return apperrors.NewNotFoundError("bot not found")
		}
		uc.logger.Errorw("failed to look up bot", "bot_id", botID, "error", err)
		return fmt.Errorf("failed to look up bot: %w", err)
	}
	if existing.UserID() != ownerID {
		return apperrors.NewNotFoundError("bot not found")
	}

	existing.Deactivate()
	if err := uc.bots.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to deactivate bot", "bot_id", botID, "error", err)
		return fmt.Errorf("failed to deactivate bot: %w", err)
	}

	uc.logger.Infow("bot deactivated", "bot_id", botID, "owner_id", ownerID)
	return nil
}
