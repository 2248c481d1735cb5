package mappers

import (
	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/persistence/models"
)

// OwnerMapper handles conversion between Owner domain and model.
type OwnerMapper interface {
	// ToModel converts domain entity to GORM model.
	ToModel(o *owner.Owner) *models.OwnerModel

	// ToDomain converts GORM model to domain entity.
	ToDomain(model *models.OwnerModel) *owner.Owner
}

// OwnerMapperImpl is the concrete implementation of OwnerMapper.
type OwnerMapperImpl struct{}

// NewOwnerMapper creates a new OwnerMapper.
func NewOwnerMapper() OwnerMapper {
	return &OwnerMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *OwnerMapperImpl) ToModel(o *owner.Owner) *models.OwnerModel {
	var email *string
	if o.Email() != "" {
		e := o.Email()
		email = &e
	}
	return &models.OwnerModel{
		ID:                  o.ID(),
		Login:               o.Login(),
		PasswordHash:        o.PasswordHash(),
		FirstName:           o.FirstName(),
		LastName:            o.LastName(),
		Email:               email,
		Company:             o.Company(),
		LanguageCode:        o.LanguageCode(),
		IsActive:            o.IsActive(),
		IsAdmin:             o.IsAdmin(),
		FailedLoginAttempts: o.FailedLoginAttempts(),
		LockedUntil:         o.LockedUntil(),
		LastLogin:           o.LastLogin(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *OwnerMapperImpl) ToDomain(model *models.OwnerModel) *owner.Owner {
	email := ""
	if model.Email != nil {
		email = *model.Email
	}
	return owner.ReconstructOwner(
		model.ID,
		model.Login,
		model.PasswordHash,
		model.FirstName,
		model.LastName,
		email,
		model.Company,
		model.LanguageCode,
		model.IsActive,
		model.IsAdmin,
		model.FailedLoginAttempts,
		model.LockedUntil,
		model.LastLogin,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
