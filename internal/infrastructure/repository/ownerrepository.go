package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/persistence/mappers"
	"chatwarden/internal/infrastructure/persistence/models"
	"chatwarden/internal/shared/logger"
)

// OwnerRepositoryImpl implements the owner.Repository interface.
type OwnerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OwnerMapper
	logger logger.Interface
}

// NewOwnerRepository creates a new owner repository instance.
func NewOwnerRepository(db *gorm.DB, logger logger.Interface) owner.Repository {
	return &OwnerRepositoryImpl{
		db:     db,
		mapper: mappers.NewOwnerMapper(),
		logger: logger,
	}
}

// Create inserts a new owner account.
func (r *OwnerRepositoryImpl) Create(ctx context.Context, o *owner.Owner) error {
	model := r.mapper.ToModel(o)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return owner.ErrLoginTaken
		}
		r.logger.Errorw("failed to create owner", "login", o.Login(), "error", err)
		return fmt.Errorf("failed to create owner: %w", err)
	}

	o.SetID(model.ID)
	r.logger.Infow("owner created", "user_id", model.ID, "login", model.Login)
	return nil
}

// Update persists all mutable owner fields.
func (r *OwnerRepositoryImpl) Update(ctx context.Context, o *owner.Owner) error {
	model := r.mapper.ToModel(o)

	result := r.db.WithContext(ctx).Model(&models.OwnerModel{}).
		Where("user_id = ?", model.ID).
		Updates(map[string]any{
			"login":                 model.Login,
			"password_hash":         model.PasswordHash,
			"first_name":            model.FirstName,
			"last_name":             model.LastName,
			"email":                 model.Email,
			"company":               model.Company,
			"language_code":         model.LanguageCode,
			"is_active":             model.IsActive,
			"is_admin":              model.IsAdmin,
			"failed_login_attempts": model.FailedLoginAttempts,
			"locked_until":          model.LockedUntil,
			"last_login":            model.LastLogin,
			"updated_at":            model.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return owner.ErrLoginTaken
		}
		r.logger.Errorw("failed to update owner", "user_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return owner.ErrOwnerNotFound
	}
	return nil
}

// FindByID retrieves one owner by primary key.
func (r *OwnerRepositoryImpl) FindByID(ctx context.Context, id uint) (*owner.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, owner.ErrOwnerNotFound
		}
		r.logger.Errorw("failed to find owner by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// FindByLogin retrieves one owner by login.
func (r *OwnerRepositoryImpl) FindByLogin(ctx context.Context, login string) (*owner.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, owner.ErrOwnerNotFound
		}
		r.logger.Errorw("failed to find owner by login", "login", login, "error", err)
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListActive returns the owners the reconciliation sweep visits.
func (r *OwnerRepositoryImpl) ListActive(ctx context.Context) ([]*owner.Owner, error) {
	var rows []models.OwnerModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("user_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list active owners", "error", err)
		return nil, fmt.Errorf("failed to list active owners: %w", err)
	}
	return r.toDomainList(rows), nil
}

// List returns all owner accounts.
func (r *OwnerRepositoryImpl) List(ctx context.Context) ([]*owner.Owner, error) {
	var rows []models.OwnerModel
	if err := r.db.WithContext(ctx).Order("user_id").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list owners", "error", err)
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return r.toDomainList(rows), nil
}

func (r *OwnerRepositoryImpl) toDomainList(rows []models.OwnerModel) []*owner.Owner {
	owners := make([]*owner.Owner, 0, len(rows))
	for i := range rows {
		owners = append(owners, r.mapper.ToDomain(&rows[i]))
	}
	return owners
}

// isDuplicateKey recognizes unique constraint violations across the three
// supported dialects.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
