package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/bot/dto"
	"chatwarden/internal/domain/bot"
	"chatwarden/internal/shared/logger"
)

type ListBotsUseCase struct {
	bots   bot.Repository
	logger logger.Interface
}

func NewListBotsUseCase(bots bot.Repository, logger logger.Interface) *ListBotsUseCase {
	return &ListBotsUseCase{bots: bots, logger: logger}
}

func (uc *ListBotsUseCase) Execute(ctx context.Context, ownerID uint) ([]*dto.BotDTO, error) {
	bots, err := uc.bots.ListByOwner(ctx, ownerID)
	if err != nil {
		uc.logger.Errorw("failed to list bots", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	return dto.ToBotDTOs(bots), nil
}
