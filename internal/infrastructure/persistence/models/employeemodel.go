package models

import "time"

// EmployeeModel is the GORM model for the employees table. The composite
// unique index tolerates NULL telegram_user_id rows on all three dialects;
// uniqueness binds only once the remote id is known.
type EmployeeModel struct {
	ID               uint      `gorm:"primaryKey;autoIncrement;column:employee_id"`
	UserID           uint      `gorm:"column:user_id;not null;uniqueIndex:uniq_employee_tg,priority:1"`
	TelegramUserID   *int64    `gorm:"column:telegram_user_id;uniqueIndex:uniq_employee_tg,priority:2"`
	TelegramUsername *string   `gorm:"column:telegram_username;type:varchar(100)"`
	FullName         string    `gorm:"column:full_name;type:varchar(255)"`
	IsActive         bool      `gorm:"column:is_active;default:true"`
	IsExternal       bool      `gorm:"column:is_external;default:false"`
	IsBot            bool      `gorm:"column:is_bot;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}
