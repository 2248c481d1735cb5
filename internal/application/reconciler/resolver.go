package reconciler

import (
	"context"
	"errors"
	"fmt"

	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/telegram"
	"chatwarden/internal/shared/logger"
)

// Resolver maps a remote user payload to an employee row within one owner's
// scope. All identity matching policy lives here; enforcement code never
// re-implements it.
//
// The matching order is: telegram_user_id first, telegram_username second
// (case-insensitive), create last. A username match whose stored
// telegram_user_id disagrees with the remote one is a collision: the stored
// record is kept for audit but deactivated, and resolution continues as if
// the username never matched.
type Resolver struct {
	employees employee.Repository
	logger    logger.Interface
}

// NewResolver creates a new identity resolver.
func NewResolver(employees employee.Repository, logger logger.Interface) *Resolver {
	return &Resolver{
		employees: employees,
		logger:    logger,
	}
}

// Resolve returns the employee for a remote user, creating or updating the
// record as the matching rules demand. The returned employee is persisted.
func (r *Resolver) Resolve(ctx context.Context, userID uint, u telegram.User) (*employee.Employee, error) {
	if u.ID == 0 {
		return nil, employee.ErrNoIdentity
	}

	// Rule 1: match by telegram_user_id.
	e, err := r.employees.FindByTelegramID(ctx, userID, u.ID)
	if err == nil {
		e.UpdateUsername(u.Username)
		e.UpdateFullName(u.DisplayName())
		e.Activate()
		if e.Dirty() {
			if err := r.employees.Update(ctx, e); err != nil {
				return nil, fmt.Errorf("failed to update employee %d: %w", e.ID(), err)
			}
		}
		return e, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, err
	}

	// Rule 2: match by telegram_username.
	if u.Username != "" {
		e, err := r.employees.FindByUsername(ctx, userID, u.Username)
		switch {
		case err == nil && !e.HasTelegramID():
			// Username-only record: adopt the remote id.
			e.AdoptTelegramID(u.ID)
			e.UpdateFullName(u.DisplayName())
			e.Activate()
			if err := r.employees.Update(ctx, e); err != nil {
				return nil, fmt.Errorf("failed to update employee %d: %w", e.ID(), err)
			}
			return e, nil
		case err == nil:
			// Collision: the username is already bound to a different remote
			// id. Keep the record for audit, deactivate it, and resolve the
			// remote user on its own.
			r.logger.Warnw("username collision, deactivating stored employee",
				"user_id", userID,
				"employee_id", e.ID(),
				"telegram_username", u.Username,
				"stored_telegram_user_id", e.TelegramIDValue(),
				"remote_telegram_user_id", u.ID)
			e.UpdateFullName(u.DisplayName())
			e.Deactivate()
			if err := r.employees.Update(ctx, e); err != nil {
				return nil, fmt.Errorf("failed to update employee %d: %w", e.ID(), err)
			}
		case !errors.Is(err, employee.ErrEmployeeNotFound):
			return nil, err
		}
	}

	// Rule 3: first observation, create an external record.
	created := employee.NewExternalEmployee(userID, u.ID, u.Username, u.DisplayName())
	if err := r.employees.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create employee for telegram user %d: %w", u.ID, err)
	}

	r.logger.Infow("employee created from remote observation",
		"user_id", userID,
		"employee_id", created.ID(),
		"telegram_user_id", u.ID,
		"telegram_username", u.Username)
	return created, nil
}
