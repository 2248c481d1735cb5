package bot

import (
	"strings"
	"time"

	"chatwarden/internal/shared/biztime"
)

// Bot is a credentialled identity in the remote messaging API. It belongs to
// exactly one owner; its token never leaves the infrastructure layer except
// to construct an API client.
type Bot struct {
	id             uint
	userID         uint
	token          string
	telegramUserID int64
	name           string
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewBot(userID uint, token, name string, telegramUserID int64) (*Bot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}
	if userID == 0 {
		return nil, ErrMissingOwner
	}

	now := biztime.NowUTC()
	return &Bot{
		userID:         userID,
		token:          token,
		telegramUserID: telegramUserID,
		name:           name,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructBot(
	id, userID uint,
	token, name string,
	telegramUserID int64,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Bot {
	return &Bot{
		id:             id,
		userID:         userID,
		token:          token,
		telegramUserID: telegramUserID,
		name:           name,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Bot) ID() uint              { return b.id }
func (b *Bot) UserID() uint          { return b.userID }
func (b *Bot) Token() string         { return b.token }
func (b *Bot) TelegramUserID() int64 { return b.telegramUserID }
func (b *Bot) Name() string          { return b.name }
func (b *Bot) IsActive() bool        { return b.isActive }
func (b *Bot) CreatedAt() time.Time  { return b.createdAt }
func (b *Bot) UpdatedAt() time.Time  { return b.updatedAt }

func (b *Bot) SetID(id uint) { b.id = id }

func (b *Bot) Rename(name string) {
	b.name = name
	b.touch()
}

// AdoptTelegramID records the bot's own remote user id once getMe resolves it.
func (b *Bot) AdoptTelegramID(id int64) {
	b.telegramUserID = id
	b.touch()
}

func (b *Bot) RotateToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	b.token = token
	b.touch()
	return nil
}

func (b *Bot) Activate() {
	b.isActive = true
	b.touch()
}

func (b *Bot) Deactivate() {
	b.isActive = false
	b.touch()
}

func (b *Bot) touch() {
	b.updatedAt = biztime.NowUTC()
}
