package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/persistence/mappers"
	"chatwarden/internal/infrastructure/persistence/models"
	"chatwarden/internal/shared/logger"
)

// ChatEmployeeRepositoryImpl implements the employee.LinkRepository interface.
type ChatEmployeeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ChatEmployeeMapper
	logger logger.Interface
}

// NewChatEmployeeRepository creates a new chat_employees repository instance.
func NewChatEmployeeRepository(db *gorm.DB, logger logger.Interface) employee.LinkRepository {
	return &ChatEmployeeRepositoryImpl{
		db:     db,
		mapper: mappers.NewChatEmployeeMapper(),
		logger: logger,
	}
}

// Upsert inserts or refreshes a link on its (chat_id, employee_id) natural
// key. Interleaved writers converge on one row instead of duplicating it.
func (r *ChatEmployeeRepositoryImpl) Upsert(ctx context.Context, l *employee.Link) error {
	model := r.mapper.ToModel(l)

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_id"}, {Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_active", "is_admin", "updated_at",
		}),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert chat employee link",
			"chat_id", l.ChatID(),
			"employee_id", l.EmployeeID(),
			"error", err)
		return fmt.Errorf("failed to upsert chat employee link: %w", err)
	}

	if model.ID != 0 {
		l.SetID(model.ID)
	}
	return nil
}

// Update persists the mutable link flags.
func (r *ChatEmployeeRepositoryImpl) Update(ctx context.Context, l *employee.Link) error {
	model := r.mapper.ToModel(l)

	result := r.db.WithContext(ctx).Model(&models.ChatEmployeeModel{}).
		Where("chat_id = ? AND employee_id = ?", model.ChatID, model.EmployeeID).
		Updates(map[string]any{
			"is_active":  model.IsActive,
			"is_admin":   model.IsAdmin,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update chat employee link",
			"chat_id", model.ChatID,
			"employee_id", model.EmployeeID,
			"error", result.Error)
		return fmt.Errorf("failed to update chat employee link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrLinkNotFound
	}
	return nil
}

// Delete removes a link permanently; only enforcement calls this.
func (r *ChatEmployeeRepositoryImpl) Delete(ctx context.Context, chatID, employeeID uint) error {
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND employee_id = ?", chatID, employeeID).
		Delete(&models.ChatEmployeeModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete chat employee link",
			"chat_id", chatID,
			"employee_id", employeeID,
			"error", result.Error)
		return fmt.Errorf("failed to delete chat employee link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrLinkNotFound
	}

	r.logger.Infow("chat employee link deleted", "chat_id", chatID, "employee_id", employeeID)
	return nil
}

// FindByChatAndEmployee retrieves one link by its natural key.
func (r *ChatEmployeeRepositoryImpl) FindByChatAndEmployee(ctx context.Context, chatID, employeeID uint) (*employee.Link, error) {
	var model models.ChatEmployeeModel
	if err := r.db.WithContext(ctx).
		First(&model, "chat_id = ? AND employee_id = ?", chatID, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrLinkNotFound
		}
		r.logger.Errorw("failed to find chat employee link",
			"chat_id", chatID,
			"employee_id", employeeID,
			"error", err)
		return nil, fmt.Errorf("failed to find chat employee link: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByChat returns all links of one chat, active and inactive.
func (r *ChatEmployeeRepositoryImpl) ListByChat(ctx context.Context, chatID uint) ([]*employee.Link, error) {
	var rows []models.ChatEmployeeModel
	if err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("employee_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list chat employee links", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list chat employee links: %w", err)
	}
	return r.toDomainList(rows), nil
}

// CountActiveByChat counts the active links of one chat, the "known" side of
// the unknown_user derivation.
func (r *ChatEmployeeRepositoryImpl) CountActiveByChat(ctx context.Context, chatID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ChatEmployeeModel{}).
		Where("chat_id = ? AND is_active = ?", chatID, true).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active chat employee links", "chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to count active chat employee links: %w", err)
	}
	return int(count), nil
}

// ListByOwner returns all links within one owner scope.
func (r *ChatEmployeeRepositoryImpl) ListByOwner(ctx context.Context, userID uint) ([]*employee.Link, error) {
	var rows []models.ChatEmployeeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list chat employee links", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list chat employee links: %w", err)
	}
	return r.toDomainList(rows), nil
}

func (r *ChatEmployeeRepositoryImpl) toDomainList(rows []models.ChatEmployeeModel) []*employee.Link {
	links := make([]*employee.Link, 0, len(rows))
	for i := range rows {
		links = append(links, r.mapper.ToDomain(&rows[i]))
	}
	return links
}
