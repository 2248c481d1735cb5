package migration

import (
	"fmt"

	"gorm.io/gorm"

	"chatwarden/internal/infrastructure/persistence/models"
	"chatwarden/internal/shared/logger"
)

// AutoMigrateModels lists every model the schema carries, lookup tables
// included.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.LanguageModel{},
		&models.ChatTypeModel{},
		&models.ChatStatusModel{},
		&models.OwnerModel{},
		&models.BotModel{},
		&models.ChatModel{},
		&models.EmployeeModel{},
		&models.ChatEmployeeModel{},
	}
}

// GormAutoMigrateStrategy migrates by reconciling the schema with the model
// structs. Development and test only.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.auto"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, modelList ...interface{}) error {
	if len(modelList) == 0 {
		modelList = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto-migration", "models", len(modelList))

	if err := db.AutoMigrate(modelList...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	if err := seedLookupTables(db); err != nil {
		return err
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// seedLookupTables inserts the fixed classification rows; existing rows are
// left untouched.
func seedLookupTables(db *gorm.DB) error {
	languages := []models.LanguageModel{
		{Code: "en", Name: "English", IsDefault: true},
		{Code: "ru", Name: "Русский"},
	}
	for _, l := range languages {
		if err := db.FirstOrCreate(&models.LanguageModel{}, l).Error; err != nil {
			return fmt.Errorf("failed to seed languages: %w", err)
		}
	}

	chatTypes := []models.ChatTypeModel{
		{ID: 1, Name: "external"},
		{ID: 2, Name: "internal"},
		{ID: 3, Name: "observe"},
		{ID: 4, Name: "new"},
		{ID: 5, Name: "removed"},
		{ID: 6, Name: "blocked"},
	}
	for _, t := range chatTypes {
		if err := db.FirstOrCreate(&models.ChatTypeModel{}, t).Error; err != nil {
			return fmt.Errorf("failed to seed chat types: %w", err)
		}
	}

	chatStatuses := []models.ChatStatusModel{
		{ID: 1, Name: "ok"},
		{ID: 2, Name: "bot_not_admin"},
		{ID: 3, Name: "access_lost"},
	}
	for _, st := range chatStatuses {
		if err := db.FirstOrCreate(&models.ChatStatusModel{}, st).Error; err != nil {
			return fmt.Errorf("failed to seed chat statuses: %w", err)
		}
	}

	return nil
}
