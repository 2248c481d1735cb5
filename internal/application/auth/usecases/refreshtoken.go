package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/auth"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type RefreshTokenUseCase struct {
	owners owner.Repository
	tokens TokenService
	logger logger.Interface
}

func NewRefreshTokenUseCase(owners owner.Repository, tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		owners: owners,
		tokens: tokens,
		logger: logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	claims, err := uc.tokens.Verify(cmd.RefreshToken)
	if err != nil {
		return nil, apperrors.NewTokenInvalidError()
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperrors.NewTokenInvalidError("refresh token required")
	}

	// The account must still be active before a new pair is issued.
	existing, err := uc.owners.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == owner.ErrOwnerNotFound {
			return nil, apperrors.NewTokenInvalidError()
		}
		uc.logger.Errorw("failed to look up owner", "owner_id", claims.UserID, "error", err)
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	if !existing.IsActive() {
		return nil, apperrors.NewAccountInactiveError()
	}

	pair, err := uc.tokens.Generate(existing.ID(), existing.Login(), existing.IsAdmin())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "owner_id", existing.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.logger.Infow("token refreshed", "owner_id", existing.ID())

	return &RefreshTokenResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
