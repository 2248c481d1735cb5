package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/domain/employee"
	apperrors "chatwarden/internal/shared/errors"
	"chatwarden/internal/shared/logger"
)

// DeactivateEmployeeUseCase marks an employee inactive. Enforcing chats will
// remove them on the next reconciliation cycle.
type DeactivateEmployeeUseCase struct {
	employees employee.Repository
	logger    logger.Interface
}

func NewDeactivateEmployeeUseCase(employees employee.Repository, logger logger.Interface) *DeactivateEmployeeUseCase {
	return &DeactivateEmployeeUseCase{employees: employees, logger: logger}
}

func (uc *DeactivateEmployeeUseCase) Execute(ctx context.Context, ownerID, employeeID uint) error {
	existing, err := uc.employees.FindByID(ctx, employeeID)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return apperrors.NewNotFoundError("employee not found")
		}
		uc.logger.Errorw("failed to look up employee", "employee_id", employeeID, "error", err)
		return fmt.Errorf("failed to look up employee: %w", err)
	}
	if existing.UserID() != ownerID {
		return apperrors.NewNotFoundError("employee not found")
	}

	existing.Deactivate()
	if err := uc.employees.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to deactivate employee", "employee_id", employeeID, "error", err)
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	uc.logger.Infow("employee deactivated", "employee_id", employeeID, "owner_id", ownerID)
	return nil
}
