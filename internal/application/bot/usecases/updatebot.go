package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/bot/dto"
	"chatwarden/internal/domain/bot"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type UpdateBotCommand struct {
	OwnerID  uint
	BotID    uint
	Name     *string
	Token    *string
	IsActive *bool
}

type UpdateBotUseCase struct {
	bots   bot.Repository
	logger logger.Interface
}

func NewUpdateBotUseCase(bots bot.Repository, logger logger.Interface) *UpdateBotUseCase {
	return &UpdateBotUseCase{bots: bots, logger: logger}
}

func (uc *UpdateBotUseCase) Execute(ctx context.Context, cmd UpdateBotCommand) (*dto.BotDTO, error) {
	existing, err := uc.bots.FindByID(ctx, cmd.BotID)
	if err != nil {
		if err == bot.ErrBotNotFound {
			return nil, apperrors.NewNotFoundError("bot not found")
		}
		uc.logger.Errorw("failed to look up bot", "bot_id", cmd.BotID, "error", err)
		return nil, fmt.Errorf("failed to look up bot: %w", err)
	}
	if existing.UserID() != cmd.OwnerID {
		return nil, apperrors.NewNotFoundError("bot not found")
	}

	if cmd.Name != nil {
		existing.Rename(*cmd.Name)
	}
	if cmd.Token != nil {
		if err := existing.RotateToken(*cmd.Token); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.IsActive != nil {
		if *cmd.IsActive {
			existing.Activate()
		} else {
			existing.Deactivate()
		}
	}

	if err := uc.bots.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update bot", "bot_id", cmd.BotID, "error", err)
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}

	uc.logger.Infow("bot updated", "bot_id", cmd.BotID, "owner_id", cmd.OwnerID)
	return dto.ToBotDTO(existing), nil
}
