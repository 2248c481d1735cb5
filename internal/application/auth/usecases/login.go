package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/auth"
	"chatwarden/internal/shared/biztime"
	"chatwarden/internal/shared/config"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// TokenService issues and verifies signed token pairs.
type TokenService interface {
	Generate(userID uint, login string, isAdmin bool) (*auth.TokenPair, error)
	Verify(token string) (*auth.Claims, error)
}

// PasswordHasher hashes and verifies owner passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type LoginCommand struct {
	Login    string
	Password string
}

type LoginResult struct {
	Owner        *owner.Owner
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginUseCase struct {
	owners     owner.Repository
	hasher     PasswordHasher
	tokens     TokenService
	loginGuard config.LoginGuardConfig
	logger     logger.Interface
}

func NewLoginUseCase(
	owners owner.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	loginGuard config.LoginGuardConfig,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		owners:     owners,
		hasher:     hasher,
		tokens:     tokens,
		loginGuard: loginGuard,
		logger:     logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	existing, err := uc.owners.FindByLogin(ctx, cmd.Login)
	if err != nil {
		if err == owner.ErrOwnerNotFound {
			// Identical error for unknown logins and wrong passwords.
			return nil, apperrors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to look up owner", "error", err)
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	now := biztime.NowUTC()
	if existing.IsLocked(now) {
		return nil, apperrors.NewAccountLockedError()
	}
	if !existing.IsActive() {
		return nil, apperrors.NewAccountInactiveError()
	}

	if err := uc.hasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		existing.RecordLoginFailure(now, uc.loginGuard.MaxFailures, uc.loginGuard.LockoutDuration())
		if saveErr := uc.owners.Update(ctx, existing); saveErr != nil {
			uc.logger.Warnw("failed to persist login failure", "owner_id", existing.ID(), "error", saveErr)
		}
		return nil, apperrors.NewInvalidCredentialsError()
	}

	pair, err := uc.tokens.Generate(existing.ID(), existing.Login(), existing.IsAdmin())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "owner_id", existing.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	existing.RecordLogin(now)
	if err := uc.owners.Update(ctx, existing); err != nil {
		uc.logger.Warnw("failed to persist successful login", "owner_id", existing.ID(), "error", err)
	}

	uc.logger.Infow("owner logged in", "owner_id", existing.ID(), "login", existing.Login())

	return &LoginResult{
		Owner:        existing,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
