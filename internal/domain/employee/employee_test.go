package employee

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func TestNewEmployee_Validation(t *testing.T) {
	if _, err := NewEmployee(0, "Alice", nil, nil, false); err != ErrMissingOwner {
		t.Errorf("missing owner: error = %v, want ErrMissingOwner", err)
	}
	if _, err := NewEmployee(1, "", nil, nil, false); err != ErrNoIdentity {
		t.Errorf("no identity: error = %v, want ErrNoIdentity", err)
	}

	// Any one identity field suffices.
	if _, err := NewEmployee(1, "Alice", nil, nil, false); err != nil {
		t.Errorf("name only: error = %v", err)
	}
	if _, err := NewEmployee(1, "", int64Ptr(42), nil, false); err != nil {
		t.Errorf("telegram id only: error = %v", err)
	}
	if _, err := NewEmployee(1, "", nil, strPtr("alice"), false); err != nil {
		t.Errorf("username only: error = %v", err)
	}
}

func TestNewBotEmployee(t *testing.T) {
	e := NewBotEmployee(1, 500, "guardbot", "guard")

	if !e.IsBot() {
		t.Error("bot employee must carry is_bot")
	}
	if e.IsExternal() {
		t.Error("bot employee must not be external")
	}
	if !e.IsActive() {
		t.Error("bot employee should start active")
	}
}

func TestFoldUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{" Alice ", "alice"},
		{"ALICE_42", "alice_42"},
		{"alice", "alice"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldUsername(tt.in); got != tt.want {
			t.Errorf("FoldUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmployee_MatchesUsername(t *testing.T) {
	e, err := NewEmployee(1, "Alice", nil, strPtr("AliceDoe"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}

	if !e.MatchesUsername("alicedoe") {
		t.Error("matching must be case-insensitive")
	}
	if e.MatchesUsername("") {
		t.Error("empty username must never match")
	}

	noUsername, err := NewEmployee(1, "Bob", int64Ptr(7), nil, false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if noUsername.MatchesUsername("bob") {
		t.Error("record without a username must never match")
	}
}

func TestEmployee_StagedUpdates(t *testing.T) {
	e, err := NewEmployee(1, "Alice", int64Ptr(42), strPtr("alice"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if e.Dirty() {
		t.Fatal("fresh employee must not be dirty")
	}

	// No-op updates stay clean.
	e.UpdateFullName("Alice")
	e.UpdateFullName("")
	e.UpdateUsername("alice")
	e.UpdateUsername("")
	e.Activate()
	if e.Dirty() {
		t.Error("no-op updates must not mark the record dirty")
	}

	e.UpdateUsername("alice_new")
	if !e.Dirty() {
		t.Error("a real username change must mark the record dirty")
	}
	if e.UsernameValue() != "alice_new" {
		t.Errorf("username = %q, want %q", e.UsernameValue(), "alice_new")
	}
}

func TestEmployee_AdoptTelegramID(t *testing.T) {
	e, err := NewEmployee(1, "Alice", nil, strPtr("alice"), false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if e.HasTelegramID() {
		t.Fatal("record should start without a telegram id")
	}

	e.AdoptTelegramID(42)
	if e.TelegramIDValue() != 42 {
		t.Errorf("telegram id = %d, want 42", e.TelegramIDValue())
	}
	if !e.Dirty() {
		t.Error("adoption must mark the record dirty")
	}
}

func TestLink_Lifecycle(t *testing.T) {
	if _, err := NewLink(0, 1, 1, false); err != ErrIncompleteLink {
		t.Errorf("missing chat: error = %v, want ErrIncompleteLink", err)
	}
	if _, err := NewLink(1, 1, 0, false); err != ErrMissingOwner {
		t.Errorf("missing owner: error = %v, want ErrMissingOwner", err)
	}

	l, err := NewLink(1, 2, 3, false)
	if err != nil {
		t.Fatalf("NewLink() error = %v", err)
	}
	if !l.IsActive() || l.Dirty() {
		t.Fatalf("fresh link: active=%v dirty=%v, want active and clean", l.IsActive(), l.Dirty())
	}

	l.Activate() // no-op
	if l.Dirty() {
		t.Error("re-activating an active link must not dirty it")
	}

	l.Deactivate()
	if l.IsActive() || !l.Dirty() {
		t.Errorf("after deactivation: active=%v dirty=%v", l.IsActive(), l.Dirty())
	}

	l.SetAdmin(true)
	if !l.IsAdmin() {
		t.Error("SetAdmin(true) should promote the link")
	}
}
