package mappers

import (
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/persistence/models"
)

// EmployeeMapper handles conversion between Employee domain and model.
type EmployeeMapper interface {
	// ToModel converts domain entity to GORM model.
	ToModel(e *employee.Employee) *models.EmployeeModel

	// ToDomain converts GORM model to domain entity.
	ToDomain(model *models.EmployeeModel) *employee.Employee
}

// EmployeeMapperImpl is the concrete implementation of EmployeeMapper.
type EmployeeMapperImpl struct{}

// NewEmployeeMapper creates a new EmployeeMapper.
func NewEmployeeMapper() EmployeeMapper {
	return &EmployeeMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *EmployeeMapperImpl) ToModel(e *employee.Employee) *models.EmployeeModel {
	return &models.EmployeeModel{
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

// ToDomain converts GORM model to domain entity
func (m *EmployeeMapperImpl) ToDomain(model *models.EmployeeModel) *employee.Employee {
	return employee.ReconstructEmployee(
		model.ID,
		model.UserID,
		model.TelegramUserID,
		model.TelegramUsername,
		model.FullName,
		model.IsActive,
		model.IsExternal,
		model.IsBot,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
