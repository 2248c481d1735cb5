package usecases

import (
	"context"
	"fmt"

	"chatwarden/internal/application/employee/dto"
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/shared/logger"
)

type ListEmployeesQuery struct {
	OwnerID    uint
	ActiveOnly bool
}

type ListEmployeesUseCase struct {
	employees employee.Repository
	logger    logger.Interface
}

func NewListEmployeesUseCase(employees employee.Repository, logger logger.Interface) *ListEmployeesUseCase {
	return &ListEmployeesUseCase{employees: employees, logger: logger}
}

func (uc *ListEmployeesUseCase) Execute(ctx context.Context, q ListEmployeesQuery) ([]*dto.EmployeeDTO, error) {
	var (
		list []*employee.Employee
		err  error
	)
	if q.ActiveOnly {
		list, err = uc.employees.ListActiveByOwner(ctx, q.OwnerID)
	} else {
		list, err = uc.employees.ListByOwner(ctx, q.OwnerID)
	}
	if err != nil {
		uc.logger.Errorw("failed to list employees", "owner_id", q.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return dto.ToEmployeeDTOs(list), nil
}
