package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/auth/dto"
	authusecases "chatwarden/internal/application/auth/usecases"
	"chatwarden/internal/domain/owner"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

type CreateOwnerCommand struct {
	Login        string
	Password     string
	FirstName    string
	LastName     string
	Email        string
	Company      string
	LanguageCode string
	IsAdmin      bool
}

type CreateOwnerUseCase struct {
	owners owner.Repository
	hasher authusecases.PasswordHasher
	logger logger.Interface
}

func NewCreateOwnerUseCase(owners owner.Repository, hasher authusecases.PasswordHasher, logger logger.Interface) *CreateOwnerUseCase {
	return &CreateOwnerUseCase{
		owners: owners,
		hasher: hasher,
		logger: logger,
	}
}

func (uc *CreateOwnerUseCase) Execute(ctx context.Context, cmd CreateOwnerCommand) (*dto.OwnerDTO, error) {
	if err := utils.ValidatePassword(cmd.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newOwner, err := owner.NewOwner(cmd.Login, hash, cmd.FirstName, cmd.LastName, cmd.Email, cmd.Company, cmd.LanguageCode, cmd.IsAdmin)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.owners.Create(ctx, newOwner); err != nil {
		if err == owner.ErrLoginTaken {
			return nil, apperrors.NewConflictError("login already taken")
		}
		uc.logger.Errorw("failed to create owner", "login", cmd.Login, "error", err)
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	uc.logger.Infow("owner created", "owner_id", newOwner.ID(), "login", newOwner.Login(), "is_admin", newOwner.IsAdmin())
	return dto.ToOwnerDTO(newOwner), nil
}
