package telegram

import "strings"

// Update is one entry in the bot's update stream.
type Update struct {
	UpdateID     int64              `json:"update_id"`
	Message      *Message           `json:"message"`
	MyChatMember *ChatMemberUpdated `json:"my_chat_member"`
}

// Message carries the membership-relevant fields of a chat message. The API
// has shipped several shapes for join/leave payloads over time; all are
// declared here and flattened by Events.
type Message struct {
	MessageID           int64  `json:"message_id"`
	From                *User  `json:"from"`
	Chat                *Chat  `json:"chat"`
	Date                int64  `json:"date"`
	Text                string `json:"text"`
	NewChatMembers      []User `json:"new_chat_members"`
	NewChatMember       *User  `json:"new_chat_member"`
	NewChatParticipant  *User  `json:"new_chat_participant"`
	LeftChatMember      *User  `json:"left_chat_member"`
	LeftChatParticipant *User  `json:"left_chat_participant"`
}

// User is a remote account as the API reports it.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// DisplayName joins the name parts the way the stored full_name is built.
func (u User) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Chat is remote chat metadata.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// ChatMember is one user's standing in a chat.
type ChatMember struct {
	User   User   `json:"user"`
	Status string `json:"status"`
}

// Present reports whether the member is currently in the chat.
func (m ChatMember) Present() bool {
	return m.Status != "left" && m.Status != "kicked"
}

// ChatMemberUpdated reports a change of someone's standing, most
// importantly the bot's own.
type ChatMemberUpdated struct {
	Chat          Chat       `json:"chat"`
	From          User       `json:"from"`
	Date          int64      `json:"date"`
	OldChatMember ChatMember `json:"old_chat_member"`
	NewChatMember ChatMember `json:"new_chat_member"`
}
