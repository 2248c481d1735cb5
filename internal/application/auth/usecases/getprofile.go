package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/auth/dto"
	"chatwarden/internal/domain/owner"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type GetProfileUseCase struct {
	owners owner.Repository
	logger logger.Interface
}

func NewGetProfileUseCase(owners owner.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{owners: owners, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, ownerID uint) (*dto.OwnerDTO, error) {
	existing, err := uc.owners.FindByID(ctx, ownerID)
	if err != nil {
		if err == owner.ErrOwnerNotFound {
			return nil, apperrors.NewNotFoundError("owner not found")
		}
		uc.logger.Errorw("failed to look up owner", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	return dto.ToOwnerDTO(existing), nil
}
