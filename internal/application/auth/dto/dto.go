package dto

import (
	"time"

	"chatwarden/internal/domain/owner"
)

// OwnerDTO is the outward representation of an owner account. The password
// hash never leaves the application layer.
type OwnerDTO struct {
	ID           uint       `json:"id"`
	Login        string     `json:"login"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Company      string     `json:"company,omitempty"`
	LanguageCode string     `json:"language_code"`
	IsActive     bool       `json:"is_active"`
	IsAdmin      bool       `json:"is_admin"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToOwnerDTO(o *owner.Owner) *OwnerDTO {
	if o == nil {
		return nil
	}
	return &OwnerDTO{
		ID:           o.ID(),
		Login:        o.Login(),
		FirstName:    o.FirstName(),
		LastName:     o.LastName(),
		Email:        o.Email(),
		Company:      o.Company(),
		LanguageCode: o.LanguageCode(),
		IsActive:     o.IsActive(),
		IsAdmin:      o.IsAdmin(),
		LastLogin:    o.LastLogin(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func ToOwnerDTOs(owners []*owner.Owner) []*OwnerDTO {
	out := make([]*OwnerDTO, 0, len(owners))
	for _, o := range owners {
		out = append(out, ToOwnerDTO(o))
	}
	return out
}
