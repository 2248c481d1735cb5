package telegram

// EventKind tags the flattened membership events.
type EventKind int

const (
	// EventMessageFrom: a user wrote a message, so they are in the chat.
	EventMessageFrom EventKind = iota
	// EventUserJoined: a user was added to the chat.
	EventUserJoined
	// EventUserLeft: a user left or was removed.
	EventUserLeft
	// EventBotStatusChanged: the bot's own standing in the chat changed.
	EventBotStatusChanged
)

func (k EventKind) String() string {
	switch k {
	case EventMessageFrom:
		return "message_from"
	case EventUserJoined:
		return "user_joined"
	case EventUserLeft:
		return "user_left"
	case EventBotStatusChanged:
		return "bot_status_changed"
	}
	return "unknown"
}

// MemberEvent is the uniform shape the engine consumes. The API encodes
// joins and leaves in several historical field layouts; Events normalizes
// them all here so membership logic never touches raw payloads.
type MemberEvent struct {
	Kind      EventKind
	ChatID    int64
	ChatTitle string
	Date      int64
	User      User
	OldStatus string
	NewStatus string
}

// Events flattens one update into membership events, in observation order:
// the sender first, then joins, then leaves.
func Events(u Update) []MemberEvent {
	var events []MemberEvent

	if m := u.Message; m != nil && m.Chat != nil {
		base := MemberEvent{
			ChatID:    m.Chat.ID,
			ChatTitle: m.Chat.Title,
			Date:      m.Date,
		}

		if m.From != nil && m.From.ID != 0 {
			e := base
			e.Kind = EventMessageFrom
			e.User = *m.From
			events = append(events, e)
		}

		joined := make(map[int64]bool)
		appendJoin := func(user User) {
			if user.ID == 0 || joined[user.ID] {
				return
			}
			joined[user.ID] = true
			e := base
			e.Kind = EventUserJoined
			e.User = user
			events = append(events, e)
		}
		for _, user := range m.NewChatMembers {
			appendJoin(user)
		}
		if m.NewChatMember != nil {
			appendJoin(*m.NewChatMember)
		}
		if m.NewChatParticipant != nil {
			appendJoin(*m.NewChatParticipant)
		}

		appendLeft := func(user *User) {
			if user == nil || user.ID == 0 {
				return
			}
			e := base
			e.Kind = EventUserLeft
			e.User = *user
			events = append(events, e)
		}
		appendLeft(m.LeftChatMember)
		appendLeft(m.LeftChatParticipant)
	}

	if mc := u.MyChatMember; mc != nil {
		events = append(events, MemberEvent{
			Kind:      EventBotStatusChanged,
			ChatID:    mc.Chat.ID,
			ChatTitle: mc.Chat.Title,
			Date:      mc.Date,
			User:      mc.NewChatMember.User,
			OldStatus: mc.OldChatMember.Status,
			NewStatus: mc.NewChatMember.Status,
		})
	}

	return events
}
