package reconciler

import (
	"context"
	"strings"
	"testing"

	"chatwarden/internal/application/reconciler/testutil"
	"chatwarden/internal/domain/bot"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/telegram"
	"chatwarden/internal/shared/biztime"
)

func nowUnix() int64 { return biztime.NowUTC().Unix() }

type engineFixture struct {
	engine    *Engine
	owners    *testutil.MockOwnerRepository
	bots      *testutil.MockBotRepository
	chats     *testutil.MockChatRepository
	employees *testutil.MockEmployeeRepository
	links     *testutil.MockLinkRepository
	api       *testutil.MockBotAPI

	owner *owner.Owner
	bot   *bot.Bot
}

// newEngineFixture wires an engine over in-memory repositories, one active
// owner and one active bot whose remote user id is 500.
func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	f := &engineFixture{
		owners:    testutil.NewMockOwnerRepository(),
		bots:      testutil.NewMockBotRepository(),
		chats:     testutil.NewMockChatRepository(),
		employees: testutil.NewMockEmployeeRepository(),
		links:     testutil.NewMockLinkRepository(),
		api:       testutil.NewMockBotAPI(),
	}

	ow, err := owner.NewOwner("tenant", "hash", "Test", "Owner", "", "", "en", false)
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	if err := f.owners.Create(context.Background(), ow); err != nil {
		t.Fatalf("Create owner error = %v", err)
	}
	f.owner = ow

	b, err := bot.NewBot(ow.ID(), "12345:token", "guard", 500)
	if err != nil {
		t.Fatalf("NewBot() error = %v", err)
	}
	if err := f.bots.Create(context.Background(), b); err != nil {
		t.Fatalf("Create bot error = %v", err)
	}
	f.bot = b

	factory := func(token string) BotAPI { return f.api }
	f.engine = NewEngine(f.owners, f.bots, f.chats, f.employees, f.links, factory, Config{}, testutil.NewMockLogger())
	return f
}

// addStoredChat seeds a chat row of the fixture's bot with the given type.
func (f *engineFixture) addStoredChat(t *testing.T, telegramChatID int64, typeID chat.TypeID) *chat.Chat {
	t.Helper()
	c, err := chat.NewChat(f.bot.ID(), f.owner.ID(), telegramChatID, "Team")
	if err != nil {
		t.Fatalf("NewChat() error = %v", err)
	}
	if err := c.SetType(typeID); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	if err := f.chats.Create(context.Background(), c); err != nil {
		t.Fatalf("Create chat error = %v", err)
	}
	return c
}

// addLinkedEmployee seeds an employee with a telegram id and an active link to
// the chat.
func (f *engineFixture) addLinkedEmployee(t *testing.T, c *chat.Chat, telegramUserID int64, name string, external bool) *employee.Employee {
	t.Helper()
	id := telegramUserID
	e, err := employee.NewEmployee(f.owner.ID(), name, &id, nil, external)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if err := f.employees.Create(context.Background(), e); err != nil {
		t.Fatalf("Create employee error = %v", err)
	}
	l, err := employee.NewLink(c.ID(), e.ID(), f.owner.ID(), false)
	if err != nil {
		t.Fatalf("NewLink() error = %v", err)
	}
	if err := f.links.Upsert(context.Background(), l); err != nil {
		t.Fatalf("Upsert link error = %v", err)
	}
	return e
}

func botAdmin() telegram.ChatMember {
	return telegram.ChatMember{User: telegram.User{ID: 500, IsBot: true, FirstName: "guard"}, Status: "administrator"}
}

func presentMember(id int64, first, username string) telegram.ChatMember {
	return telegram.ChatMember{User: telegram.User{ID: id, FirstName: first, Username: username}, Status: "member"}
}

// TestEngine_BootstrapSwallowsBacklog verifies the first poll only positions
// the cursor: pre-startup history never creates chats.
func TestEngine_BootstrapSwallowsBacklog(t *testing.T) {
	f := newEngineFixture(t)

	f.api.QueueUpdates(telegram.Update{
		UpdateID: 10,
		Message: &telegram.Message{
			From: &telegram.User{ID: 42, FirstName: "Alice"},
			Chat: &telegram.Chat{ID: 1000, Title: "Team"},
			Date: nowUnix(),
		},
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got, _ := f.chats.ListByOwner(context.Background(), f.owner.ID()); len(got) != 0 {
		t.Errorf("backlog created %d chats, want 0", len(got))
	}
}

// TestEngine_FirstContact verifies a freshly observed chat gets a "new" row,
// the welcome message, the bot's own link and a link for the sender.
func TestEngine_FirstContact(t *testing.T) {
	f := newEngineFixture(t)
	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:  "Team",
		Admins: []telegram.ChatMember{botAdmin()},
		Count:  3,
	})

	// Cycle 1 bootstraps the cursor, cycle 2 delivers the join.
	f.api.QueueUpdates(telegram.Update{UpdateID: 1})
	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	f.api.QueueUpdates(telegram.Update{
		UpdateID: 2,
		Message: &telegram.Message{
			From: &telegram.User{ID: 42, FirstName: "Alice", Username: "alice"},
			Chat: &telegram.Chat{ID: 1000, Title: "Team"},
			Date: nowUnix(),
		},
	})
	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	stored, err := f.chats.FindByBotAndTelegramID(context.Background(), f.bot.ID(), 1000)
	if err != nil {
		t.Fatalf("chat was not created: %v", err)
	}
	if stored.TypeID() != chat.TypeNew {
		t.Errorf("chat type = %v, want new", stored.TypeID())
	}
	if stored.StatusID() != chat.StatusOK {
		t.Errorf("chat status = %v, want ok", stored.StatusID())
	}
	if stored.Title() != "Team" {
		t.Errorf("chat title = %q, want %q", stored.Title(), "Team")
	}
	if stored.UserNum() != 3 {
		t.Errorf("user_num = %d, want 3", stored.UserNum())
	}

	welcomed := false
	for _, msg := range f.api.Messages() {
		if msg.ChatID == 1000 && msg.Text == welcomeMessage {
			welcomed = true
		}
	}
	if !welcomed {
		t.Error("welcome message was not sent")
	}

	// The sender must resolve to an external employee with an active link.
	emp, err := f.employees.FindByTelegramID(context.Background(), f.owner.ID(), 42)
	if err != nil {
		t.Fatalf("sender was not resolved: %v", err)
	}
	l, err := f.links.FindByChatAndEmployee(context.Background(), stored.ID(), emp.ID())
	if err != nil {
		t.Fatalf("sender link missing: %v", err)
	}
	if !l.IsActive() {
		t.Error("sender link should be active")
	}

	// The bot itself is linked as an admin.
	botEmp, err := f.employees.FindByTelegramID(context.Background(), f.owner.ID(), 500)
	if err != nil {
		t.Fatalf("bot employee missing: %v", err)
	}
	if !botEmp.IsBot() {
		t.Error("bot employee should carry is_bot")
	}
	botLink, err := f.links.FindByChatAndEmployee(context.Background(), stored.ID(), botEmp.ID())
	if err != nil {
		t.Fatalf("bot link missing: %v", err)
	}
	if !botLink.IsAdmin() {
		t.Error("bot link should be admin")
	}
}

// TestEngine_AccessLoss verifies a 403 on the access probe marks only this
// bot's row removed with access_lost.
func TestEngine_AccessLoss(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	f.api.AddChat(1000, &testutil.RemoteChat{Title: "Team", Forbidden: true})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got, _ := f.chats.FindByID(context.Background(), c.ID())
	if got.TypeID() != chat.TypeRemoved {
		t.Errorf("chat type = %v, want removed", got.TypeID())
	}
	if got.StatusID() != chat.StatusAccessLost {
		t.Errorf("chat status = %v, want access_lost", got.StatusID())
	}
}

// TestEngine_Revival verifies a removed chat returns to "new" when the access
// probe succeeds again.
func TestEngine_Revival(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeRemoved)
	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:  "Team",
		Admins: []telegram.ChatMember{botAdmin()},
		Count:  1,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got, _ := f.chats.FindByID(context.Background(), c.ID())
	if got.TypeID() != chat.TypeNew {
		t.Errorf("chat type = %v, want new after revival", got.TypeID())
	}
}

// TestEngine_BlockedChatUntouched verifies blocked chats are skipped entirely.
func TestEngine_BlockedChatUntouched(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeBlocked)
	f.api.AddChat(1000, &testutil.RemoteChat{Title: "Renamed", Count: 9})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got, _ := f.chats.FindByID(context.Background(), c.ID())
	if got.TypeID() != chat.TypeBlocked {
		t.Errorf("chat type = %v, want blocked", got.TypeID())
	}
	if got.Title() != "Team" {
		t.Errorf("blocked chat title = %q, want untouched %q", got.Title(), "Team")
	}
	if len(f.api.Messages()) != 0 || len(f.api.Kicks()) != 0 {
		t.Error("blocked chat must produce no outward calls")
	}
}

// TestEngine_EnforcesInactiveMember verifies the external-chat policy: an
// inactive employee still present remotely is kicked, the link hard-deleted
// and the removal announced.
func TestEngine_EnforcesInactiveMember(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	emp := f.addLinkedEmployee(t, c, 42, "Alice Smith", false)
	emp.Deactivate()

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Team",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "alice")},
		Count:   3,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	kicks := f.api.Kicks()
	if len(kicks) != 1 || kicks[0].UserID != 42 {
		t.Fatalf("kicks = %+v, want exactly one for user 42", kicks)
	}
	if _, err := f.links.FindByChatAndEmployee(context.Background(), c.ID(), emp.ID()); err == nil {
		t.Error("link should be hard-deleted after a successful kick")
	}

	announced := false
	for _, msg := range f.api.Messages() {
		if msg.ChatID == 1000 && strings.Contains(msg.Text, "Alice Smith") {
			announced = true
		}
	}
	if !announced {
		t.Error("kick notification was not sent")
	}
}

// TestEngine_InternalRemovesExternals verifies internal chats additionally
// kick active members flagged external.
func TestEngine_InternalRemovesExternals(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeInternal)
	f.addLinkedEmployee(t, c, 42, "Contractor", true)

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Staff",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Contractor", "")},
		Count:   2,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	kicks := f.api.Kicks()
	if len(kicks) != 1 || kicks[0].UserID != 42 {
		t.Fatalf("kicks = %+v, want exactly one for user 42", kicks)
	}
}

// TestEngine_ObserveOnlyNeverKicks verifies observe chats count but never
// enforce: an inactive member's link goes dormant locally instead.
func TestEngine_ObserveOnlyNeverKicks(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeObserve)
	emp := f.addLinkedEmployee(t, c, 42, "Alice", false)
	emp.Deactivate()

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Watch",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "")},
		Count:   3,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(f.api.Kicks()) != 0 {
		t.Error("observe-only chat must never kick")
	}
	l, err := f.links.FindByChatAndEmployee(context.Background(), c.ID(), emp.ID())
	if err != nil {
		t.Fatalf("link should survive: %v", err)
	}
	if l.IsActive() {
		t.Error("link of an inactive employee should go dormant")
	}
}

// TestEngine_KickFailureKeepsLink verifies a failed remote removal leaves the
// link in place, inactive, for the next cycle to retry.
func TestEngine_KickFailureKeepsLink(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	emp := f.addLinkedEmployee(t, c, 42, "Alice", false)
	emp.Deactivate()
	f.api.SetKickStatus(telegram.StatusTransportError)

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Team",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "")},
		Count:   3,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	l, err := f.links.FindByChatAndEmployee(context.Background(), c.ID(), emp.ID())
	if err != nil {
		t.Fatalf("link should be kept for retry: %v", err)
	}
	if l.IsActive() {
		t.Error("kept link should be inactive after a failed kick")
	}
}

// TestEngine_BotNotAdmin verifies the bot's standing is downgraded when the
// admin list does not include it.
func TestEngine_BotNotAdmin(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:  "Team",
		Admins: []telegram.ChatMember{presentMember(7, "Human", "human")},
		Count:  2,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got, _ := f.chats.FindByID(context.Background(), c.ID())
	if got.StatusID() != chat.StatusBotNotAdmin {
		t.Errorf("chat status = %v, want bot_not_admin", got.StatusID())
	}

	// The human admin gets resolved and linked as admin.
	emp, err := f.employees.FindByTelegramID(context.Background(), f.owner.ID(), 7)
	if err != nil {
		t.Fatalf("admin was not resolved: %v", err)
	}
	l, err := f.links.FindByChatAndEmployee(context.Background(), c.ID(), emp.ID())
	if err != nil {
		t.Fatalf("admin link missing: %v", err)
	}
	if !l.IsAdmin() {
		t.Error("admin link should carry is_admin")
	}
}

// TestEngine_BotNotAdminSkipsEnforcement verifies no kick is attempted while
// the bot lacks admin rights: the inactive link goes dormant and waits for a
// cycle in which removal is actually possible.
func TestEngine_BotNotAdminSkipsEnforcement(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	emp := f.addLinkedEmployee(t, c, 42, "Alice", false)
	emp.Deactivate()

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Team",
		Admins:  []telegram.ChatMember{presentMember(7, "Human", "human")},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "")},
		Count:   3,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(f.api.Kicks()) != 0 {
		t.Errorf("demoted bot attempted %d kicks, want 0", len(f.api.Kicks()))
	}
	l, err := f.links.FindByChatAndEmployee(context.Background(), c.ID(), emp.ID())
	if err != nil {
		t.Fatalf("link should survive: %v", err)
	}
	if l.IsActive() {
		t.Error("link of an inactive employee should go dormant")
	}
}

// TestEngine_ProbeLinksUnlinkedEmployee verifies the unlinked-employee probe:
// an owner employee present in the chat without a link gets one.
func TestEngine_ProbeLinksUnlinkedEmployee(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)

	id := int64(42)
	emp, err := employee.NewEmployee(f.owner.ID(), "Alice", &id, nil, false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	if err := f.employees.Create(context.Background(), emp); err != nil {
		t.Fatalf("Create employee error = %v", err)
	}

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Team",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "alice")},
		Count:   3,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	l, err := f.links.FindByChatAndEmployee(context.Background(), c.ID(), emp.ID())
	if err != nil {
		t.Fatalf("probe did not create a link: %v", err)
	}
	if !l.IsActive() {
		t.Error("probed link should be active")
	}

	// The live username is adopted along the way.
	got, _ := f.employees.FindByID(context.Background(), emp.ID())
	if got.UsernameValue() != "alice" {
		t.Errorf("username = %q, want refreshed %q", got.UsernameValue(), "alice")
	}
}

// TestEngine_StableStateIsQuiet verifies a converged chat produces no outward
// calls on subsequent cycles.
func TestEngine_StableStateIsQuiet(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	f.addLinkedEmployee(t, c, 42, "Alice", false)

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Team",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "alice")},
		Count:   3,
	})

	for i := 0; i < 2; i++ {
		if _, err := f.engine.Execute(context.Background()); err != nil {
			t.Fatalf("Execute() cycle %d error = %v", i+1, err)
		}
	}

	if len(f.api.Kicks()) != 0 {
		t.Errorf("converged state produced %d kicks", len(f.api.Kicks()))
	}
	if len(f.api.Messages()) != 0 {
		t.Errorf("converged state produced %d messages", len(f.api.Messages()))
	}
}

// TestEngine_TenantIsolation verifies one owner's sweep never touches another
// owner's records even when the remote ids coincide.
func TestEngine_TenantIsolation(t *testing.T) {
	f := newEngineFixture(t)
	c := f.addStoredChat(t, 1000, chat.TypeExternal)
	f.addLinkedEmployee(t, c, 42, "Alice", false)

	other, err := owner.NewOwner("other", "hash", "Other", "", "", "", "en", false)
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	if err := f.owners.Create(context.Background(), other); err != nil {
		t.Fatalf("Create owner error = %v", err)
	}
	id := int64(42)
	foreign, err := employee.NewEmployee(other.ID(), "Foreign Alice", &id, nil, false)
	if err != nil {
		t.Fatalf("NewEmployee() error = %v", err)
	}
	foreign.Deactivate()
	if err := f.employees.Create(context.Background(), foreign); err != nil {
		t.Fatalf("Create employee error = %v", err)
	}

	f.api.AddChat(1000, &testutil.RemoteChat{
		Title:   "Team",
		Admins:  []telegram.ChatMember{botAdmin()},
		Members: map[int64]telegram.ChatMember{42: presentMember(42, "Alice", "")},
		Count:   3,
	})

	if _, err := f.engine.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// The inactive record belongs to the other tenant; no enforcement fires.
	if len(f.api.Kicks()) != 0 {
		t.Errorf("foreign tenant's inactive record triggered %d kicks", len(f.api.Kicks()))
	}
	got, _ := f.employees.FindByID(context.Background(), foreign.ID())
	if got.IsActive() {
		t.Error("foreign tenant's record must stay untouched")
	}
}
