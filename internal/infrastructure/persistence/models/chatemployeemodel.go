package models

import "time"

// ChatEmployeeModel is the GORM model for the chat_employees link table.
// (chat_id, employee_id) is globally unique; user_id is denormalized onto
// the row for scoped reads only.
type ChatEmployeeModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ChatID     uint      `gorm:"column:chat_id;not null;uniqueIndex:uniq_chat_employee,priority:1"`
	EmployeeID uint      `gorm:"column:employee_id;not null;uniqueIndex:uniq_chat_employee,priority:2"`
	UserID     uint      `gorm:"column:user_id;not null;index"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	IsAdmin    bool      `gorm:"column:is_admin;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ChatEmployeeModel) TableName() string {
	return "chat_employees"
}
