package chat

import (
	"fmt"
	"testing"
)

func newTestChat(t *testing.T) *Chat {
	t.Helper()
	c, err := NewChat(1, 1, -100123, "Team")
	if err != nil {
		t.Fatalf("NewChat() error = %v", err)
	}
	return c
}

func TestNewChat_Defaults(t *testing.T) {
	c := newTestChat(t)

	if c.TypeID() != TypeNew {
		t.Errorf("type = %v, want new", c.TypeID())
	}
	if c.StatusID() != StatusOK {
		t.Errorf("status = %v, want ok", c.StatusID())
	}
	if c.Title() != "Team" {
		t.Errorf("title = %q, want %q", c.Title(), "Team")
	}
	if c.UserNum() != 0 || c.UnknownUser() != 0 {
		t.Errorf("counters = (%d, %d), want zero", c.UserNum(), c.UnknownUser())
	}
	if c.Dirty() {
		t.Error("fresh chat must not be dirty")
	}
}

func TestNewChat_Validation(t *testing.T) {
	if _, err := NewChat(0, 1, -100, ""); err != ErrMissingOwner {
		t.Errorf("missing bot: error = %v, want ErrMissingOwner", err)
	}
	if _, err := NewChat(1, 0, -100, ""); err != ErrMissingOwner {
		t.Errorf("missing owner: error = %v, want ErrMissingOwner", err)
	}
	if _, err := NewChat(1, 1, 0, ""); err != ErrMissingTelegramID {
		t.Errorf("missing telegram id: error = %v, want ErrMissingTelegramID", err)
	}
}

func TestChat_RemovalAndRevival(t *testing.T) {
	c := newTestChat(t)

	c.MarkRemoved()
	if c.TypeID() != TypeRemoved {
		t.Errorf("type = %v, want removed", c.TypeID())
	}
	if !c.Dirty() {
		t.Error("removal must mark the chat dirty")
	}

	if !c.Revive() {
		t.Error("Revive() on a removed chat should report true")
	}
	if c.TypeID() != TypeNew {
		t.Errorf("type after revival = %v, want new", c.TypeID())
	}

	if c.Revive() {
		t.Error("Revive() on a live chat should report false")
	}
}

func TestChat_MarkAccessLost(t *testing.T) {
	c := newTestChat(t)

	c.MarkAccessLost()
	if c.TypeID() != TypeRemoved {
		t.Errorf("type = %v, want removed", c.TypeID())
	}
	if c.StatusID() != StatusAccessLost {
		t.Errorf("status = %v, want access_lost", c.StatusID())
	}
}

func TestChat_RecordTitle(t *testing.T) {
	c := newTestChat(t)

	c.RecordTitle("Team") // consecutive duplicate
	if got := len(c.Titles()); got != 1 {
		t.Errorf("title history length = %d, want 1 after duplicate", got)
	}

	c.RecordTitle("Team Renamed")
	titles := c.Titles()
	if titles[0] != "Team Renamed" || titles[1] != "Team" {
		t.Errorf("title history = %v, want newest first", titles)
	}

	c.RecordTitle("") // ignored
	if got := len(c.Titles()); got != 2 {
		t.Errorf("title history length = %d, empty title must be ignored", got)
	}

	// History is capped.
	for i := 0; i < 20; i++ {
		c.RecordTitle(fmt.Sprintf("name %d", i))
	}
	if got := len(c.Titles()); got != 10 {
		t.Errorf("title history length = %d, want capped at 10", got)
	}
	if c.Title() != "name 19" {
		t.Errorf("current title = %q, want newest", c.Title())
	}
}

func TestChat_ApplyMemberCount(t *testing.T) {
	c := newTestChat(t)

	if !c.ApplyMemberCount(10, 4) {
		t.Error("first application should report a change")
	}
	if c.UserNum() != 10 || c.UnknownUser() != 6 {
		t.Errorf("counters = (%d, %d), want (10, 6)", c.UserNum(), c.UnknownUser())
	}

	if c.ApplyMemberCount(10, 4) {
		t.Error("unchanged values should report no change")
	}

	// More known links than the remote count clamps unknown to zero.
	if !c.ApplyMemberCount(3, 5) {
		t.Error("clamped application should report a change")
	}
	if c.UnknownUser() != 0 {
		t.Errorf("unknown_user = %d, want clamped to 0", c.UnknownUser())
	}
}

func TestChat_SetType(t *testing.T) {
	c := newTestChat(t)

	if err := c.SetType(TypeInternal); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	if c.TypeID() != TypeInternal {
		t.Errorf("type = %v, want internal", c.TypeID())
	}
	if err := c.SetType(TypeID(99)); err != ErrInvalidType {
		t.Errorf("invalid type: error = %v, want ErrInvalidType", err)
	}
	if err := c.SetStatus(StatusID(0)); err != ErrInvalidStatus {
		t.Errorf("invalid status: error = %v, want ErrInvalidStatus", err)
	}
}

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		typeID TypeID
		want   Policy
	}{
		{TypeExternal, Policy{KickInactive: true, Count: true}},
		{TypeInternal, Policy{KickInactive: true, KickExternal: true, Count: true}},
		{TypeObserve, Policy{Count: true}},
		{TypeNew, Policy{Count: true}},
		{TypeRemoved, Policy{Skip: true}},
		{TypeBlocked, Policy{Skip: true}},
	}

	for _, tt := range tests {
		t.Run(tt.typeID.String(), func(t *testing.T) {
			if got := PolicyFor(tt.typeID); got != tt.want {
				t.Errorf("PolicyFor(%v) = %+v, want %+v", tt.typeID, got, tt.want)
			}
		})
	}
}

func TestPolicy_Enforces(t *testing.T) {
	if PolicyFor(TypeObserve).Enforces() {
		t.Error("observe policy must not enforce")
	}
	if !PolicyFor(TypeExternal).Enforces() {
		t.Error("external policy must enforce")
	}
	if !PolicyFor(TypeInternal).Enforces() {
		t.Error("internal policy must enforce")
	}
}
