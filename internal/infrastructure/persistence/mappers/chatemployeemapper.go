package mappers

import (
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/persistence/models"
)

// ChatEmployeeMapper handles conversion between Link domain and model.
type ChatEmployeeMapper interface {
	// ToModel converts domain entity to GORM model.
	ToModel(l *employee.Link) *models.ChatEmployeeModel

	// ToDomain converts GORM model to domain entity.
	ToDomain(model *models.ChatEmployeeModel) *employee.Link
}

// ChatEmployeeMapperImpl is the concrete implementation of ChatEmployeeMapper.
type ChatEmployeeMapperImpl struct{}

// NewChatEmployeeMapper creates a new ChatEmployeeMapper.
func NewChatEmployeeMapper() ChatEmployeeMapper {
	return &ChatEmployeeMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *ChatEmployeeMapperImpl) ToModel(l *employee.Link) *models.ChatEmployeeModel {
	return &models.ChatEmployeeModel{
		ID:         l.ID(),
		ChatID:     l.ChatID(),
		EmployeeID: l.EmployeeID(),
		UserID:     l.UserID(),
		IsActive:   l.IsActive(),
		IsAdmin:    l.IsAdmin(),
		CreatedAt:  l.CreatedAt(),
		UpdatedAt:  l.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *ChatEmployeeMapperImpl) ToDomain(model *models.ChatEmployeeModel) *employee.Link {
	return employee.ReconstructLink(
		model.ID,
		model.ChatID,
		model.EmployeeID,
		model.UserID,
		model.IsActive,
		model.IsAdmin,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
