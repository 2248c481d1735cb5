package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/bot/dto"
	"chatwarden/internal/domain/bot"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type CreateBotCommand struct {
	OwnerID uint
	Token   string
	Name    string
}

type CreateBotUseCase struct {
	bots   bot.Repository
	logger logger.Interface
}

func NewCreateBotUseCase(bots bot.Repository, logger logger.Interface) *CreateBotUseCase {
	return &CreateBotUseCase{bots: bots, logger: logger}
}

func (uc *CreateBotUseCase) Execute(ctx context.Context, cmd CreateBotCommand) (*dto.BotDTO, error) {
	// The telegram user id is unknown until the first reconciliation pass
	// talks to the API with this token.
	newBot, err := bot.NewBot(cmd.OwnerID, cmd.Token, cmd.Name, 0)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.bots.Create(ctx, newBot); err != nil {
		uc.logger.Errorw("failed to create bot", "owner_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	uc.logger.Infow("bot created", "bot_id", newBot.ID(), "owner_id", cmd.OwnerID)
	return dto.ToBotDTO(newBot), nil
}
