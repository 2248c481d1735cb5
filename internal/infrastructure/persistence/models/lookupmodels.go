package models

// ChatTypeModel is the GORM model for the chat_types lookup table.
type ChatTypeModel struct {
	ID   int    `gorm:"primaryKey;column:type_id"`
	Name string `gorm:"column:name;type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (ChatTypeModel) TableName() string {
	return "chat_types"
}

// ChatStatusModel is the GORM model for the chat_statuses lookup table.
type ChatStatusModel struct {
	ID   int    `gorm:"primaryKey;column:status_id"`
	Name string `gorm:"column:name;type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (ChatStatusModel) TableName() string {
	return "chat_statuses"
}

// LanguageModel is the GORM model for the languages lookup table.
type LanguageModel struct {
	Code      string `gorm:"primaryKey;column:language_code;type:varchar(5)"`
	Name      string `gorm:"column:name;type:varchar(50);not null"`
	IsDefault bool   `gorm:"column:is_default;default:false"`
}

// TableName returns the table name for GORM
func (LanguageModel) TableName() string {
	return "languages"
}
