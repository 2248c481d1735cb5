package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/persistence/mappers"
	"chatwarden/internal/infrastructure/persistence/models"
	sharedErrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// EmployeeRepositoryImpl implements the employee.Repository interface.
type EmployeeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EmployeeMapper
	logger logger.Interface
}

// NewEmployeeRepository creates a new employee repository instance.
func NewEmployeeRepository(db *gorm.DB, logger logger.Interface) employee.Repository {
	return &EmployeeRepositoryImpl{
		db:     db,
		mapper: mappers.NewEmployeeMapper(),
		logger: logger,
	}
}

// Create inserts a new employee record.
func (r *EmployeeRepositoryImpl) Create(ctx context.Context, e *employee.Employee) error {
	model := r.mapper.ToModel(e)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return sharedErrors.NewConflictError("employee already exists for this telegram user")
		}
		r.logger.Errorw("failed to create employee", "user_id", e.UserID(), "error", err)
		return fmt.Errorf("failed to create employee: %w", err)
	}

	e.SetID(model.ID)
	r.logger.Infow("employee created",
		"employee_id", model.ID,
		"user_id", model.UserID,
		"telegram_user_id", model.TelegramUserID)
	return nil
}

// Update persists all mutable employee fields.
func (r *EmployeeRepositoryImpl) Update(ctx context.Context, e *employee.Employee) error {
	model := r.mapper.ToModel(e)

	result := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("employee_id = ?", model.ID).
		Updates(map[string]any{
			"telegram_user_id":  model.TelegramUserID,
			"telegram_username": model.TelegramUsername,
			"full_name":         model.FullName,
			"is_active":         model.IsActive,
			"is_external":       model.IsExternal,
			"is_bot":            model.IsBot,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return sharedErrors.NewConflictError("employee already exists for this telegram user")
		}
		r.logger.Errorw("failed to update employee", "employee_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID retrieves one employee by primary key.
func (r *EmployeeRepositoryImpl) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "employee_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		r.logger.Errorw("failed to find employee", "employee_id", id, "error", err)
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// FindByTelegramID matches on (user_id, telegram_user_id).
func (r *EmployeeRepositoryImpl) FindByTelegramID(ctx context.Context, userID uint, telegramUserID int64) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND telegram_user_id = ?", userID, telegramUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		r.logger.Errorw("failed to find employee by telegram id",
			"user_id", userID,
			"telegram_user_id", telegramUserID,
			"error", err)
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// FindByUsername matches on (user_id, telegram_username), case-insensitively.
func (r *EmployeeRepositoryImpl) FindByUsername(ctx context.Context, userID uint, username string) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND LOWER(telegram_username) = LOWER(?)", userID, username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		r.logger.Errorw("failed to find employee by username",
			"user_id", userID,
			"telegram_username", username,
			"error", err)
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByOwner returns all employees of one owner.
func (r *EmployeeRepositoryImpl) ListByOwner(ctx context.Context, userID uint) ([]*employee.Employee, error) {
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("employee_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list employees", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return r.toDomainList(rows), nil
}

// ListActiveByOwner returns the active employees of one owner.
func (r *EmployeeRepositoryImpl) ListActiveByOwner(ctx context.Context, userID uint) ([]*employee.Employee, error) {
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("employee_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list active employees", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return r.toDomainList(rows), nil
}

func (r *EmployeeRepositoryImpl) toDomainList(rows []models.EmployeeModel) []*employee.Employee {
	employees := make([]*employee.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, r.mapper.ToDomain(&rows[i]))
	}
	return employees
}
