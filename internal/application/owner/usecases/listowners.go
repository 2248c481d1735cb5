package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/auth/dto"
	"chatwarden/internal/domain/owner"
	"chatwarden/internal/shared/logger"
)

type ListOwnersUseCase struct {
	owners owner.Repository
	logger logger.Interface
}

func NewListOwnersUseCase(owners owner.Repository, logger logger.Interface) *ListOwnersUseCase {
	return &ListOwnersUseCase{owners: owners, logger: logger}
}

func (uc *ListOwnersUseCase) Execute(ctx context.Context) ([]*dto.OwnerDTO, error) {
	list, err := uc.owners.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list owners", "error", err)
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return dto.ToOwnerDTOs(list), nil
}
