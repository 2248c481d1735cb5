package dto

import (
	"time"

	"chatwarden/internal/domain/employee"
)

type EmployeeDTO struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	TelegramUserID   *int64    `json:"telegram_user_id,omitempty"`
	TelegramUsername *string   `json:"telegram_username,omitempty"`
	FullName         string    `json:"full_name,omitempty"`
	IsActive         bool      `json:"is_active"`
	IsExternal       bool      `json:"is_external"`
	IsBot            bool      `json:"is_bot"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToEmployeeDTO(e *employee.Employee) *EmployeeDTO {
	if e == nil {
		return nil
	}
	return &EmployeeDTO{
		ID:               e.ID(),
		UserID:           e.UserID(),
		TelegramUserID:   e.TelegramUserID(),
		TelegramUsername: e.TelegramUsername(),
		FullName:         e.FullName(),
		IsActive:         e.IsActive(),
		IsExternal:       e.IsExternal(),
		IsBot:            e.IsBot(),
		CreatedAt:        e.CreatedAt(),
		UpdatedAt:        e.UpdatedAt(),
	}
}

func ToEmployeeDTOs(employees []*employee.Employee) []*EmployeeDTO {
	out := make([]*EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToEmployeeDTO(e))
	}
	return out
}
