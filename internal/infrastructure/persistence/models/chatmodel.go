package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChatModel is the GORM model for the chats table. Title holds the observed
// title history as a JSON array, newest first, so it round-trips identically
// on postgres, mysql and sqlite.
type ChatModel struct {
	ID             uint                        `gorm:"primaryKey;autoIncrement;column:chat_id"`
	BotID          uint                        `gorm:"column:bot_id;not null;index:idx_chats_user_bot,priority:2"`
	UserID         uint                        `gorm:"column:user_id;not null;index:idx_chats_user_bot,priority:1"`
	TelegramChatID int64                       `gorm:"column:telegram_chat_id;not null;index"`
	TypeID         int                         `gorm:"column:type_id;not null;default:4"`
	StatusID       int                         `gorm:"column:status_id;not null;default:1"`
	Title          datatypes.JSONSlice[string] `gorm:"column:title"`
	UserNum        int                         `gorm:"column:user_num;not null;default:0"`
	UnknownUser    int                         `gorm:"column:unknown_user;not null;default:0"`
	CreatedAt      time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ChatModel) TableName() string {
	return "chats"
}
