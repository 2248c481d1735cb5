package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/auth/dto"
	"chatwarden/internal/domain/owner"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type UpdateOwnerCommand struct {
	OwnerID      uint
	FirstName    *string
	LastName     *string
	Email        *string
	Company      *string
	LanguageCode *string
	// IsActive and IsAdmin are honored for admin callers only; the handler
	// strips them otherwise.
	IsActive *bool
	IsAdmin  *bool
}

type UpdateOwnerUseCase struct {
	owners owner.Repository
	logger logger.Interface
}

func NewUpdateOwnerUseCase(owners owner.Repository, logger logger.Interface) *UpdateOwnerUseCase {
	return &UpdateOwnerUseCase{owners: owners, logger: logger}
}

func (uc *UpdateOwnerUseCase) Execute(ctx context.Context, cmd UpdateOwnerCommand) (*dto.OwnerDTO, error) {
	existing, err := uc.owners.FindByID(ctx, cmd.OwnerID)
	if err != nil {
		if err == owner.ErrOwnerNotFound {
			return nil, apperrors.NewNotFoundError("owner not found")
		}
		uc.logger.Errorw("failed to look up owner", "owner_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	firstName := existing.FirstName()
	lastName := existing.LastName()
	email := existing.Email()
	company := existing.Company()
	languageCode := existing.LanguageCode()
	if cmd.FirstName != nil {
		firstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		lastName = *cmd.LastName
	}
	if cmd.Email != nil {
		email = *cmd.Email
	}
	if cmd.Company != nil {
		company = *cmd.Company
	}
	if cmd.LanguageCode != nil {
		languageCode = *cmd.LanguageCode
	}
	existing.UpdateProfile(firstName, lastName, email, company, languageCode)

	if cmd.IsActive != nil {
		if *cmd.IsActive {
			existing.Activate()
		} else {
			existing.Deactivate()
		}
	}
	if cmd.IsAdmin != nil {
		existing.SetAdmin(*cmd.IsAdmin)
	}

	if err := uc.owners.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update owner", "owner_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	uc.logger.Infow("owner updated", "owner_id", cmd.OwnerID)
	return dto.ToOwnerDTO(existing), nil
}
