package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/employee/dto"
	"chatwarden/internal/domain/employee"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

type UpdateEmployeeCommand struct {
	OwnerID          uint
	EmployeeID       uint
	FullName         *string
	TelegramUserID   *int64
	TelegramUsername *string
	IsExternal       *bool
	IsActive         *bool
}

type UpdateEmployeeUseCase struct {
	employees employee.Repository
	logger    logger.Interface
}

func NewUpdateEmployeeUseCase(employees employee.Repository, logger logger.Interface) *UpdateEmployeeUseCase {
	return &UpdateEmployeeUseCase{employees: employees, logger: logger}
}

func (uc *UpdateEmployeeUseCase) Execute(ctx context.Context, cmd UpdateEmployeeCommand) (*dto.EmployeeDTO, error) {
	existing, err := uc.employees.FindByID(ctx, cmd.EmployeeID)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return nil, apperrors.NewNotFoundError("employee not found")
		}
		uc.logger.Errorw("failed to look up employee", "employee_id", cmd.EmployeeID, "error", err)
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if existing.UserID() != cmd.OwnerID {
		return nil, apperrors.NewNotFoundError("employee not found")
	}

	if cmd.FullName != nil {
		existing.UpdateFullName(*cmd.FullName)
	}
	if cmd.TelegramUserID != nil {
		existing.AdoptTelegramID(*cmd.TelegramUserID)
	}
	if cmd.TelegramUsername != nil {
		existing.UpdateUsername(*cmd.TelegramUsername)
	}
	if cmd.IsExternal != nil {
		existing.SetExternal(*cmd.IsExternal)
	}
	if cmd.IsActive != nil {
		if *cmd.IsActive {
			existing.Activate()
		} else {
			existing.Deactivate()
		}
	}

	if err := uc.employees.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update employee", "employee_id", cmd.EmployeeID, "error", err)
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	uc.logger.Infow("employee updated", "employee_id", cmd.EmployeeID, "owner_id", cmd.OwnerID)
	return dto.ToEmployeeDTO(existing), nil
}
