package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/chat/dto"
	"chatwarden/internal/domain/chat"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// UpdateChatCommand patches the classification of one chat. Type and status
// are the only owner-writable columns; everything else is reconciled state.
type UpdateChatCommand struct {
	OwnerID  uint
	ChatID   uint
	TypeID   *int
	StatusID *int
}

type UpdateChatUseCase struct {
	chats  chat.Repository
	logger logger.Interface
}

func NewUpdateChatUseCase(chats chat.Repository, logger logger.Interface) *UpdateChatUseCase {
	return &UpdateChatUseCase{chats: chats, logger: logger}
}

func (uc *UpdateChatUseCase) Execute(ctx context.Context, cmd UpdateChatCommand) (*dto.ChatDTO, error) {
	existing, err := uc.chats.FindByID(ctx, cmd.ChatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return nil, apperrors.NewNotFoundError("chat not found")
		}
		uc.logger.Errorw("failed to look up chat", "chat_id", cmd.ChatID, "error", err)
		return nil, fmt.Errorf("failed to look up chat: %w", err)
	}
	if existing.UserID() != cmd.OwnerID {
		return nil, apperrors.NewNotFoundError("chat not found")
	}

	if cmd.TypeID != nil {
		if err := existing.SetType(chat.TypeID(*cmd.TypeID)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.StatusID != nil {
		if err := existing.SetStatus(chat.StatusID(*cmd.StatusID)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.chats.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update chat", "chat_id", cmd.ChatID, "error", err)
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}

	uc.logger.Infow("chat updated",
		"chat_id", cmd.ChatID,
		"owner_id", cmd.OwnerID,
		"type_id", existing.TypeID(),
		"status_id", existing.StatusID())
	return dto.ToChatDTO(existing), nil
}
