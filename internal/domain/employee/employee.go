package employee

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"chatwarden/internal/shared/biztime"
)

// Employee is the local projection of a remote user inside one owner's
// scope. The engine never deletes employees; is_active toggles instead.
type Employee struct {
	id               uint
	userID           uint
	telegramUserID   *int64
	telegramUsername *string
	fullName         string
	isActive         bool
	isExternal       bool
	isBot            bool
	createdAt        time.Time
	updatedAt        time.Time

	dirty bool
}

// FoldUsername normalizes a username for case-insensitive matching.
func FoldUsername(username string) string {
	return cases.Fold().String(strings.TrimSpace(username))
}

// NewEmployee creates an owner-managed employee record.
func NewEmployee(userID uint, fullName string, telegramUserID *int64, telegramUsername *string, isExternal bool) (*Employee, error) {
	if userID == 0 {
		return nil, ErrMissingOwner
	}
	if fullName == "" && telegramUserID == nil && telegramUsername == nil {
		return nil, ErrNoIdentity
	}

	now := biztime.NowUTC()
	return &Employee{
		userID:           userID,
		telegramUserID:   telegramUserID,
		telegramUsername: telegramUsername,
		fullName:         fullName,
		isActive:         true,
		isExternal:       isExternal,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// NewExternalEmployee creates the record for a remote user first observed by
// the engine: external, active, never a bot.
func NewExternalEmployee(userID uint, telegramUserID int64, telegramUsername, fullName string) *Employee {
	now := biztime.NowUTC()
	e := &Employee{
		userID:     userID,
		fullName:   fullName,
		isActive:   true,
		isExternal: true,
		createdAt:  now,
		updatedAt:  now,
	}
	if telegramUserID != 0 {
		e.telegramUserID = &telegramUserID
	}
	if telegramUsername != "" {
		e.telegramUsername = &telegramUsername
	}
	return e
}

// NewBotEmployee registers a bot as a chat participant. This is the only
// path that produces is_bot records.
func NewBotEmployee(userID uint, telegramUserID int64, telegramUsername, fullName string) *Employee {
	e := NewExternalEmployee(userID, telegramUserID, telegramUsername, fullName)
	e.isBot = true
	e.isExternal = false
	return e
}

func ReconstructEmployee(
	id, userID uint,
	telegramUserID *int64,
	telegramUsername *string,
	fullName string,
	isActive, isExternal, isBot bool,
	createdAt, updatedAt time.Time,
) *Employee {
	return &Employee{
		id:               id,
		userID:           userID,
		telegramUserID:   telegramUserID,
		telegramUsername: telegramUsername,
		fullName:         fullName,
		isActive:         isActive,
		isExternal:       isExternal,
		isBot:            isBot,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (e *Employee) ID() uint                  { return e.id }
func (e *Employee) UserID() uint              { return e.userID }
func (e *Employee) TelegramUserID() *int64    { return e.telegramUserID }
func (e *Employee) TelegramUsername() *string { return e.telegramUsername }
func (e *Employee) FullName() string          { return e.fullName }
func (e *Employee) IsActive() bool            { return e.isActive }
func (e *Employee) IsExternal() bool          { return e.isExternal }
func (e *Employee) IsBot() bool               { return e.isBot }
func (e *Employee) CreatedAt() time.Time      { return e.createdAt }
func (e *Employee) UpdatedAt() time.Time      { return e.updatedAt }

func (e *Employee) SetID(id uint) { e.id = id }

// Dirty reports whether staged updates need persisting.
func (e *Employee) Dirty() bool { return e.dirty }

func (e *Employee) HasTelegramID() bool {
	return e.telegramUserID != nil
}

// TelegramIDValue returns the remote user id, zero if absent.
func (e *Employee) TelegramIDValue() int64 {
	if e.telegramUserID == nil {
		return 0
	}
	return *e.telegramUserID
}

// UsernameValue returns the stored username, empty if absent.
func (e *Employee) UsernameValue() string {
	if e.telegramUsername == nil {
		return ""
	}
	return *e.telegramUsername
}

// MatchesUsername compares usernames case-insensitively.
func (e *Employee) MatchesUsername(username string) bool {
	if e.telegramUsername == nil || username == "" {
		return false
	}
	return FoldUsername(*e.telegramUsername) == FoldUsername(username)
}

// AdoptTelegramID binds the remote user id to a record matched by username.
func (e *Employee) AdoptTelegramID(id int64) {
	if e.telegramUserID != nil && *e.telegramUserID == id {
		return
	}
	e.telegramUserID = &id
	e.touch()
}

// UpdateFullName stages a name change when the observed name differs.
func (e *Employee) UpdateFullName(fullName string) {
	if fullName == "" || e.fullName == fullName {
		return
	}
	e.fullName = fullName
	e.touch()
}

// UpdateUsername stages a username change when the observed one differs.
func (e *Employee) UpdateUsername(username string) {
	if username == "" {
		return
	}
	if e.telegramUsername != nil && *e.telegramUsername == username {
		return
	}
	e.telegramUsername = &username
	e.touch()
}

func (e *Employee) Activate() {
	if e.isActive {
		return
	}
	e.isActive = true
	e.touch()
}

func (e *Employee) Deactivate() {
	if !e.isActive {
		return
	}
	e.isActive = false
	e.touch()
}

func (e *Employee) SetExternal(isExternal bool) {
	if e.isExternal == isExternal {
		return
	}
	e.isExternal = isExternal
	e.touch()
}

func (e *Employee) touch() {
	e.updatedAt = biztime.NowUTC()
	e.dirty = true
}
