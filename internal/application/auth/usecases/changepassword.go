package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/domain/owner"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

type ChangePasswordCommand struct {
	OwnerID     uint
	OldPassword string
	NewPassword string
}

type ChangePasswordUseCase struct {
	owners owner.Repository
	hasher PasswordHasher
	logger logger.Interface
}

func NewChangePasswordUseCase(owners owner.Repository, hasher PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		owners: owners,
		hasher: hasher,
		logger: logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := utils.ValidatePassword(cmd.NewPassword); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	existing, err := uc.owners.FindByID(ctx, cmd.OwnerID)
	if err != nil {
		if err == owner.ErrOwnerNotFound {
			return apperrors.NewNotFoundError("owner not found")
		}
		uc.logger.Errorw("failed to look up owner", "owner_id", cmd.OwnerID, "error", err)
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	if err := uc.hasher.Verify(cmd.OldPassword, existing.PasswordHash()); err != nil {
		return apperrors.NewInvalidCredentialsError()
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := existing.ChangePassword(hash); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := uc.owners.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update owner", "owner_id", cmd.OwnerID, "error", err)
		return fmt.Errorf("failed to update owner: %w", err)
	}

	uc.logger.Infow("password changed", "owner_id", cmd.OwnerID)
	return nil
}
