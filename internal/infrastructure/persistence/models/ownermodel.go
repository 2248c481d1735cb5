package models

import "time"

// OwnerModel is the GORM model for the users table.
type OwnerModel struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement;column:user_id"`
	Login               string     `gorm:"column:login;type:varchar(50);not null;uniqueIndex"`
	PasswordHash        string     `gorm:"column:password_hash;type:varchar(60);not null"`
	FirstName           string     `gorm:"column:first_name;type:varchar(100)"`
	LastName            string     `gorm:"column:last_name;type:varchar(100)"`
	Email               *string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	Company             string     `gorm:"column:company;type:varchar(255)"`
	LanguageCode        string     `gorm:"column:language_code;type:varchar(5);default:en"`
	IsActive            bool       `gorm:"column:is_active;default:true"`
	IsAdmin             bool       `gorm:"column:is_admin;default:false"`
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts;default:0"`
	LockedUntil         *time.Time `gorm:"column:locked_until"`
	LastLogin           *time.Time `gorm:"column:last_login"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "users"
}
