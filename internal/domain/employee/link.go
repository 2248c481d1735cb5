package employee

import (
	"time"

	"chatwarden/internal/shared/biztime"
)

// Link is a chat membership relation. It is unique on (chat_id, employee_id)
// globally; user_id is denormalized onto the row for scoped reads only.
// Links are deactivated when a member leaves and hard-deleted only by
// enforcement.
type Link struct {
	id         uint
	chatID     uint
	employeeID uint
	userID     uint
	isActive   bool
	isAdmin    bool
	createdAt  time.Time
	updatedAt  time.Time

	dirty bool
}

func NewLink(chatID, employeeID, userID uint, isAdmin bool) (*Link, error) {
	if chatID == 0 || employeeID == 0 {
		return nil, ErrIncompleteLink
	}
	if userID == 0 {
		return nil, ErrMissingOwner
	}

	now := biztime.NowUTC()
	return &Link{
		chatID:     chatID,
		employeeID: employeeID,
		userID:     userID,
		isActive:   true,
		isAdmin:    isAdmin,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructLink(
	id, chatID, employeeID, userID uint,
	isActive, isAdmin bool,
	createdAt, updatedAt time.Time,
) *Link {
	return &Link{
		id:         id,
		chatID:     chatID,
		employeeID: employeeID,
		userID:     userID,
		isActive:   isActive,
		isAdmin:    isAdmin,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (l *Link) ID() uint             { return l.id }
func (l *Link) ChatID() uint         { return l.chatID }
func (l *Link) EmployeeID() uint     { return l.employeeID }
func (l *Link) UserID() uint         { return l.userID }
func (l *Link) IsActive() bool       { return l.isActive }
func (l *Link) IsAdmin() bool        { return l.isAdmin }
func (l *Link) CreatedAt() time.Time { return l.createdAt }
func (l *Link) UpdatedAt() time.Time { return l.updatedAt }

func (l *Link) SetID(id uint) { l.id = id }

func (l *Link) Dirty() bool { return l.dirty }

func (l *Link) Activate() {
	if l.isActive {
		return
	}
	l.isActive = true
	l.touch()
}

func (l *Link) Deactivate() {
	if !l.isActive {
		return
	}
	l.isActive = false
	l.touch()
}

func (l *Link) SetAdmin(isAdmin bool) {
	if l.isAdmin == isAdmin {
		return
	}
	l.isAdmin = isAdmin
	l.touch()
}

func (l *Link) touch() {
	l.updatedAt = biztime.NowUTC()
	l.dirty = true
}
