package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/chat/dto"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/domain/employee"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// ListChatMembersUseCase serves the membership links of one chat joined with
// the employee directory.
type ListChatMembersUseCase struct {
	chats     chat.Repository
	employees employee.Repository
	links     employee.LinkRepository
	logger    logger.Interface
}

func NewListChatMembersUseCase(
	chats chat.Repository,
	employees employee.Repository,
	links employee.LinkRepository,
	logger logger.Interface,
) *ListChatMembersUseCase {
	return &ListChatMembersUseCase{
		chats:     chats,
		employees: employees,
		links:     links,
		logger:    logger,
	}
}

func (uc *ListChatMembersUseCase) Execute(ctx context.Context, ownerID, chatID uint) ([]*dto.ChatMemberDTO, error) {
	existing, err := uc.chats.FindByID(ctx, chatID)
	if err != nil {
		if err == chat.ErrChatNotFound {
			return nil, apperrors.NewNotFoundError("chat not found")
		}
		uc.logger.Errorw("failed to look up chat", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to look up chat: %w", err)
	}
	if existing.UserID() != ownerID {
		return nil, apperrors.NewNotFoundError("chat not found")
	}

	links, err := uc.links.ListByChat(ctx, chatID)
	if err != nil {
		uc.logger.Errorw("failed to list chat links", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list chat links: %w", err)
	}

	members := make([]*dto.ChatMemberDTO, 0, len(links))
	for _, l := range links {
		emp, err := uc.employees.FindByID(ctx, l.EmployeeID())
		if err != nil && err != employee.ErrEmployeeNotFound {
			uc.logger.Errorw("failed to look up employee", "employee_id", l.EmployeeID(), "error", err)
			return nil, fmt.Errorf("failed to look up employee: %w", err)
		}
		members = append(members, dto.ToChatMemberDTO(l, emp))
	}
	return members, nil
}
