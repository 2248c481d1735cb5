package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_MessageSender(t *testing.T) {
	u := Update{
		UpdateID: 1,
		Message: &Message{
			From: &User{ID: 42, FirstName: "Alice"},
			Chat: &Chat{ID: -100, Title: "Team"},
			Date: 1700000000,
			Text: "hello",
		},
	}

	events := Events(u)
	require.Len(t, events, 1)
	assert.Equal(t, EventMessageFrom, events[0].Kind)
	assert.EqualValues(t, -100, events[0].ChatID)
	assert.Equal(t, "Team", events[0].ChatTitle)
	assert.EqualValues(t, 42, events[0].User.ID)
}

func TestEvents_JoinFieldLayouts(t *testing.T) {
	// All three historical join layouts populated at once; duplicates
	// collapse to a single join per user.
	u := Update{
		Message: &Message{
			Chat:               &Chat{ID: -100},
			NewChatMembers:     []User{{ID: 1}, {ID: 2}},
			NewChatMember:      &User{ID: 1},
			NewChatParticipant: &User{ID: 3},
		},
	}

	events := Events(u)
	require.Len(t, events, 3)
	var ids []int64
	for _, ev := range events {
		assert.Equal(t, EventUserJoined, ev.Kind)
		ids = append(ids, ev.User.ID)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)
}

func TestEvents_LeaveFieldLayouts(t *testing.T) {
	u := Update{
		Message: &Message{
			Chat:                &Chat{ID: -100},
			LeftChatMember:      &User{ID: 5},
			LeftChatParticipant: &User{ID: 6},
		},
	}

	events := Events(u)
	require.Len(t, events, 2)
	assert.Equal(t, EventUserLeft, events[0].Kind)
	assert.Equal(t, EventUserLeft, events[1].Kind)
}

func TestEvents_MyChatMember(t *testing.T) {
	u := Update{
		MyChatMember: &ChatMemberUpdated{
			Chat: Chat{ID: -100, Title: "Team"},
			Date: 1700000000,
			OldChatMember: ChatMember{
				User:   User{ID: 500, IsBot: true},
				Status: "member",
			},
			NewChatMember: ChatMember{
				User:   User{ID: 500, IsBot: true},
				Status: "kicked",
			},
		},
	}

	events := Events(u)
	require.Len(t, events, 1)
	assert.Equal(t, EventBotStatusChanged, events[0].Kind)
	assert.Equal(t, "member", events[0].OldStatus)
	assert.Equal(t, "kicked", events[0].NewStatus)
	assert.EqualValues(t, 500, events[0].User.ID)
}

func TestEvents_EmptyUpdate(t *testing.T) {
	assert.Empty(t, Events(Update{UpdateID: 9}))
}

func TestEvents_IgnoresZeroUserIDs(t *testing.T) {
	u := Update{
		Message: &Message{
			Chat:           &Chat{ID: -100},
			From:           &User{ID: 0},
			NewChatMembers: []User{{ID: 0}},
			LeftChatMember: &User{ID: 0},
		},
	}
	assert.Empty(t, Events(u))
}

func TestChatMember_Present(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"creator", true},
		{"administrator", true},
		{"member", true},
		{"restricted", true},
		{"left", false},
		{"kicked", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChatMember{Status: tt.status}.Present(), tt.status)
	}
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Alice Smith", User{FirstName: "Alice", LastName: "Smith"}.DisplayName())
	assert.Equal(t, "Alice", User{FirstName: "Alice"}.DisplayName())
	assert.Equal(t, "Smith", User{LastName: " Smith "}.DisplayName())
	assert.Equal(t, "", User{}.DisplayName())
}
