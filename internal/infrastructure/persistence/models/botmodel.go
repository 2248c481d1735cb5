package models

import "time"

// BotModel is the GORM model for the bots table.
type BotModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:bot_id"`
	UserID         uint      `gorm:"column:user_id;not null;index"`
	BotToken       string    `gorm:"column:bot_token;type:varchar(255);not null"`
	TelegramUserID int64     `gorm:"column:telegram_user_id;default:0"`
	BotName        string    `gorm:"column:bot_name;type:varchar(255)"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (BotModel) TableName() string {
	return "bots"
}
