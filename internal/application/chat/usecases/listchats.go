package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/chat/dto"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/shared/logger"
)

type ListChatsQuery struct {
	OwnerID uint
	// BotID narrows the listing to one bot when non-zero.
	BotID uint
}

type ListChatsUseCase struct {
	chats  chat.Repository
	logger logger.Interface
}

func NewListChatsUseCase(chats chat.Repository, logger logger.Interface) *ListChatsUseCase {
	return &ListChatsUseCase{chats: chats, logger: logger}
}

func (uc *ListChatsUseCase) Execute(ctx context.Context, q ListChatsQuery) ([]*dto.ChatDTO, error) {
	var (
		chats []*chat.Chat
		err   error
	)
	if q.BotID != 0 {
		chats, err = uc.chats.ListByOwnerAndBot(ctx, q.OwnerID, q.BotID)
	} else {
		chats, err = uc.chats.ListByOwner(ctx, q.OwnerID)
	}
	if err != nil {
		uc.logger.Errorw("failed to list chats", "owner_id", q.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return dto.ToChatDTOs(chats), nil
}
