package chat

import (
	"time"

	"chatwarden/internal/shared/biztime"
)

// maxTitleHistory caps the stored title history per chat.
const maxTitleHistory = 10

// Chat is one bot's view of a remote conversation. The working key is
// (bot_id, telegram_chat_id); two bots in the same remote chat hold two
// independent rows, and access loss on one never touches the other.
type Chat struct {
	id             uint
	botID          uint
	userID         uint
	telegramChatID int64
	typeID         TypeID
	statusID       StatusID
	titles         []string
	userNum        int
	unknownUser    int
	createdAt      time.Time
	updatedAt      time.Time

	dirty bool
}

// NewChat creates a first-contact chat record: type "new", status ok,
// zero counters.
func NewChat(botID, userID uint, telegramChatID int64, title string) (*Chat, error) {
	if botID == 0 || userID == 0 {
		return nil, ErrMissingOwner
	}
	if telegramChatID == 0 {
		return nil, ErrMissingTelegramID
	}

	var titles []string
	if title != "" {
		titles = []string{title}
	}

	now := biztime.NowUTC()
	return &Chat{
		botID:          botID,
		userID:         userID,
		telegramChatID: telegramChatID,
		typeID:         TypeNew,
		statusID:       StatusOK,
		titles:         titles,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructChat(
	id, botID, userID uint,
	telegramChatID int64,
	typeID TypeID,
	statusID StatusID,
	titles []string,
	userNum, unknownUser int,
	createdAt, updatedAt time.Time,
) *Chat {
	return &Chat{
		id:             id,
		botID:          botID,
		userID:         userID,
		telegramChatID: telegramChatID,
		typeID:         typeID,
		statusID:       statusID,
		titles:         titles,
		userNum:        userNum,
		unknownUser:    unknownUser,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *Chat) ID() uint              { return c.id }
func (c *Chat) BotID() uint           { return c.botID }
func (c *Chat) UserID() uint          { return c.userID }
func (c *Chat) TelegramChatID() int64 { return c.telegramChatID }
func (c *Chat) TypeID() TypeID        { return c.typeID }
func (c *Chat) StatusID() StatusID    { return c.statusID }
func (c *Chat) UserNum() int          { return c.userNum }
func (c *Chat) UnknownUser() int      { return c.unknownUser }
func (c *Chat) CreatedAt() time.Time  { return c.createdAt }
func (c *Chat) UpdatedAt() time.Time  { return c.updatedAt }

// Titles returns the title history, newest first.
func (c *Chat) Titles() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	return out
}

// Title returns the current title, empty if none was ever observed.
func (c *Chat) Title() string {
	if len(c.titles) == 0 {
		return ""
	}
	return c.titles[0]
}

func (c *Chat) SetID(id uint) { c.id = id }

// Dirty reports whether any mutation changed state since load. The engine
// persists only dirty chats so an unchanged remote state produces zero
// writes.
func (c *Chat) Dirty() bool { return c.dirty }

// Policy returns the reconciliation policy for the current type.
func (c *Chat) Policy() Policy {
	return PolicyFor(c.typeID)
}

// MarkRemoved flags loss of the chat (getChat returned 400). Only this
// bot's row is affected.
func (c *Chat) MarkRemoved() {
	if c.typeID == TypeRemoved {
		return
	}
	c.typeID = TypeRemoved
	c.touch()
}

// MarkAccessLost flags a 403: the chat is removed and the bot's standing is
// recorded as access-lost.
func (c *Chat) MarkAccessLost() {
	if c.typeID == TypeRemoved && c.statusID == StatusAccessLost {
		return
	}
	c.typeID = TypeRemoved
	c.statusID = StatusAccessLost
	c.touch()
}

// Revive returns a removed chat to the "new" type after access came back.
func (c *Chat) Revive() bool {
	if c.typeID != TypeRemoved {
		return false
	}
	c.typeID = TypeNew
	c.touch()
	return true
}

// MarkBotNotAdmin records that the bot is present but not an administrator.
func (c *Chat) MarkBotNotAdmin() {
	if c.statusID == StatusBotNotAdmin {
		return
	}
	c.statusID = StatusBotNotAdmin
	c.touch()
}

// MarkStatusOK restores the normal standing.
func (c *Chat) MarkStatusOK() {
	if c.statusID == StatusOK {
		return
	}
	c.statusID = StatusOK
	c.touch()
}

// RecordTitle prepends a newly observed title. Consecutive duplicates are
// ignored; history is capped.
func (c *Chat) RecordTitle(title string) {
	if title == "" {
		return
	}
	if len(c.titles) > 0 && c.titles[0] == title {
		return
	}
	c.titles = append([]string{title}, c.titles...)
	if len(c.titles) > maxTitleHistory {
		c.titles = c.titles[:maxTitleHistory]
	}
	c.touch()
}

// ApplyMemberCount stores the remote member count and derives the unknown
// counter from the number of locally known active links. Values are written
// only when they differ.
func (c *Chat) ApplyMemberCount(count, known int) bool {
	unknown := count - known
	if unknown < 0 {
		unknown = 0
	}
	if c.userNum == count && c.unknownUser == unknown {
		return false
	}
	c.userNum = count
	c.unknownUser = unknown
	c.touch()
	return true
}

// SetType reclassifies the chat (owner-driven, via the API surface).
func (c *Chat) SetType(t TypeID) error {
	if !t.Valid() {
		return ErrInvalidType
	}
	if c.typeID == t {
		return nil
	}
	c.typeID = t
	c.touch()
	return nil
}

func (c *Chat) SetStatus(s StatusID) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	if c.statusID == s {
		return nil
	}
	c.statusID = s
	c.touch()
	return nil
}

func (c *Chat) touch() {
	c.updatedAt = biztime.NowUTC()
	c.dirty = true
}
