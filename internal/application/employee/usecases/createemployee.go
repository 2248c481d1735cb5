package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/employee/dto"
	"chatwarden/internal/domain/employee"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type CreateEmployeeCommand struct {
	OwnerID          uint
	FullName         string
	TelegramUserID   *int64
	TelegramUsername *string
	IsExternal       bool
}

type CreateEmployeeUseCase struct {
	employees employee.Repository
	logger    logger.Interface
}

func NewCreateEmployeeUseCase(employees employee.Repository, logger logger.Interface) *CreateEmployeeUseCase {
	return &CreateEmployeeUseCase{employees: employees, logger: logger}
}

func (uc *CreateEmployeeUseCase) Execute(ctx context.Context, cmd CreateEmployeeCommand) (*dto.EmployeeDTO, error) {
	if cmd.TelegramUserID != nil {
		existing, err := uc.employees.FindByTelegramID(ctx, cmd.OwnerID, *cmd.TelegramUserID)
		if err != nil && err != employee.ErrEmployeeNotFound {
			uc.logger.Errorw("failed to check telegram id", "owner_id", cmd.OwnerID, "error", err)
			return nil, fmt.Errorf("failed to check telegram id: %w", err)
		}
		if existing != nil {
			return nil, apperrors.NewConflictError("employee with this telegram id already exists")
		}
	}

	newEmployee, err := employee.NewEmployee(cmd.OwnerID, cmd.FullName, cmd.TelegramUserID, cmd.TelegramUsername, cmd.IsExternal)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.employees.Create(ctx, newEmployee); err != nil {
		uc.logger.Errorw("failed to create employee", "owner_id", cmd.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	uc.logger.Infow("employee created", "employee_id", newEmployee.ID(), "owner_id", cmd.OwnerID)
	return dto.ToEmployeeDTO(newEmployee), nil
}
