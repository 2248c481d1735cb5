package dto

import (
	"time"

	"chatwarden/internal/domain/chat"
	"chatwarden/internal/domain/employee"
)

type ChatDTO struct {
	ID             uint      `json:"id"`
	BotID          uint      `json:"bot_id"`
	UserID         uint      `json:"user_id"`
	TelegramChatID int64     `json:"telegram_chat_id"`
	TypeID         int       `json:"type_id"`
	StatusID       int       `json:"status_id"`
	Title          string    `json:"title,omitempty"`
	TitleHistory   []string  `json:"title_history,omitempty"`
	UserNum        int       `json:"user_num"`
	UnknownUser    int       `json:"unknown_user"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToChatDTO(c *chat.Chat) *ChatDTO {
	if c == nil {
		return nil
	}
	return &ChatDTO{
		ID:             c.ID(),
		BotID:          c.BotID(),
		UserID:         c.UserID(),
		TelegramChatID: c.TelegramChatID(),
		TypeID:         int(c.TypeID()),
		StatusID:       int(c.StatusID()),
		Title:          c.Title(),
		TitleHistory:   c.Titles(),
		UserNum:        c.UserNum(),
		UnknownUser:    c.UnknownUser(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func ToChatDTOs(chats []*chat.Chat) []*ChatDTO {
	out := make([]*ChatDTO, 0, len(chats))
	for _, c := range chats {
		out = append(out, ToChatDTO(c))
	}
	return out
}

// ChatMemberDTO is one membership link joined with its employee identity,
// as served by the chat members listing.
type ChatMemberDTO struct {
	EmployeeID       uint      `json:"employee_id"`
	FullName         string    `json:"full_name,omitempty"`
	TelegramUserID   *int64    `json:"telegram_user_id,omitempty"`
	TelegramUsername *string   `json:"telegram_username,omitempty"`
	IsActive         bool      `json:"is_active"`
	IsAdmin          bool      `json:"is_admin"`
	IsExternal       bool      `json:"is_external"`
	IsBot            bool      `json:"is_bot"`
	LinkedAt         time.Time `json:"linked_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToChatMemberDTO(l *employee.Link, e *employee.Employee) *ChatMemberDTO {
	dto := &ChatMemberDTO{
		EmployeeID: l.EmployeeID(),
		IsActive:   l.IsActive(),
		IsAdmin:    l.IsAdmin(),
		LinkedAt:   l.CreatedAt(),
		UpdatedAt:  l.UpdatedAt(),
	}
	if e != nil {
		dto.FullName = e.FullName()
		dto.TelegramUserID = e.TelegramUserID()
		dto.TelegramUsername = e.TelegramUsername()
		dto.IsExternal = e.IsExternal()
		dto.IsBot = e.IsBot()
	}
	return dto
}
