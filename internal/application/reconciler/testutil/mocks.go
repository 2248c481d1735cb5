// Package testutil provides in-memory fakes for testing the reconciliation
// engine: repositories backed by maps and a scripted Bot API.
package testutil

import (
	"context"
	"sync"

	"chatwarden/internal/domain/bot"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/telegram"
	"chatwarden/internal/shared/logger"
)

// MockOwnerRepository is an in-memory owner.Repository.
type MockOwnerRepository struct {
	mu     sync.RWMutex
	owners map[uint]*owner.Owner
	nextID uint

	listError error
}

func NewMockOwnerRepository() *MockOwnerRepository {
	return &MockOwnerRepository{owners: make(map[uint]*owner.Owner)}
}

func (m *MockOwnerRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

func (m *MockOwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID() == 0 {
		m.nextID++
		o.SetID(m.nextID)
	}
	m.owners[o.ID()] = o
	return nil
}

func (m *MockOwnerRepository) Update(ctx context.Context, o *owner.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[o.ID()] = o
	return nil
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uint) (*owner.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[id]
	if !ok {
		return nil, owner.ErrOwnerNotFound
	}
	return o, nil
}

func (m *MockOwnerRepository) FindByLogin(ctx context.Context, login string) (*owner.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.owners {
		if o.Login() == login {
			return o, nil
		}
	}
	return nil, owner.ErrOwnerNotFound
}

func (m *MockOwnerRepository) ListActive(ctx context.Context) ([]*owner.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}
	var out []*owner.Owner
	for id := uint(1); id <= m.nextID; id++ {
		if o, ok := m.owners[id]; ok && o.IsActive() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockOwnerRepository) List(ctx context.Context) ([]*owner.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*owner.Owner
	for id := uint(1); id <= m.nextID; id++ {
		if o, ok := m.owners[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// MockBotRepository is an in-memory bot.Repository.
type MockBotRepository struct {
	mu     sync.RWMutex
	bots   map[uint]*bot.Bot
	nextID uint
}

func NewMockBotRepository() *MockBotRepository {
	return &MockBotRepository{bots: make(map[uint]*bot.Bot)}
}

func (m *MockBotRepository) Create(ctx context.Context, b *bot.Bot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID() == 0 {
		m.nextID++
		b.SetID(m.nextID)
	}
	m.bots[b.ID()] = b
	return nil
}

func (m *MockBotRepository) Update(ctx context.Context, b *bot.Bot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bots[b.ID()] = b
	return nil
}

func (m *MockBotRepository) FindByID(ctx context.Context, id uint) (*bot.Bot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bots[id]
	if !ok {
		return nil, bot.ErrBotNotFound
	}
	return b, nil
}

func (m *MockBotRepository) ListActiveByOwner(ctx context.Context, userID uint) ([]*bot.Bot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*bot.Bot
	for id := uint(1); id <= m.nextID; id++ {
		if b, ok := m.bots[id]; ok && b.UserID() == userID && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MockBotRepository) ListByOwner(ctx context.Context, userID uint) ([]*bot.Bot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*bot.Bot
	for id := uint(1); id <= m.nextID; id++ {
		if b, ok := m.bots[id]; ok && b.UserID() == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// MockChatRepository is an in-memory chat.Repository.
type MockChatRepository struct {
	mu     sync.RWMutex
	chats  map[uint]*chat.Chat
	nextID uint
}

func NewMockChatRepository() *MockChatRepository {
	return &MockChatRepository{chats: make(map[uint]*chat.Chat)}
}

func (m *MockChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID() == 0 {
		m.nextID++
		c.SetID(m.nextID)
	}
	m.chats[c.ID()] = c
	return nil
}

func (m *MockChatRepository) Update(ctx context.Context, c *chat.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[c.ID()] = c
	return nil
}

func (m *MockChatRepository) FindByID(ctx context.Context, id uint) (*chat.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chats[id]
	if !ok {
		return nil, chat.ErrChatNotFound
	}
	return c, nil
}

func (m *MockChatRepository) FindByBotAndTelegramID(ctx context.Context, botID uint, telegramChatID int64) (*chat.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.chats {
		if c.BotID() == botID && c.TelegramChatID() == telegramChatID {
			return c, nil
		}
	}
	return nil, chat.ErrChatNotFound
}

func (m *MockChatRepository) ListByOwnerAndBot(ctx context.Context, userID, botID uint) ([]*chat.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*chat.Chat
	for id := uint(1); id <= m.nextID; id++ {
		if c, ok := m.chats[id]; ok && c.UserID() == userID && c.BotID() == botID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockChatRepository) ListByOwner(ctx context.Context, userID uint) ([]*chat.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*chat.Chat
	for id := uint(1); id <= m.nextID; id++ {
		if c, ok := m.chats[id]; ok && c.UserID() == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MockEmployeeRepository is an in-memory employee.Repository. Username lookup
// folds case the way the SQL implementation does.
type MockEmployeeRepository struct {
	mu        sync.RWMutex
	employees map[uint]*employee.Employee
	nextID    uint

	updateError error
}

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{employees: make(map[uint]*employee.Employee)}
}

func (m *MockEmployeeRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID() == 0 {
		m.nextID++
		e.SetID(m.nextID)
	}
	m.employees[e.ID()] = e
	return nil
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateError != nil {
		return m.updateError
	}
	m.employees[e.ID()] = e
	return nil
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *MockEmployeeRepository) FindByTelegramID(ctx context.Context, userID uint, telegramUserID int64) (*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id := uint(1); id <= m.nextID; id++ {
		e, ok := m.employees[id]
		if ok && e.UserID() == userID && e.HasTelegramID() && e.TelegramIDValue() == telegramUserID {
			return e, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByUsername(ctx context.Context, userID uint, username string) (*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	folded := employee.FoldUsername(username)
	for id := uint(1); id <= m.nextID; id++ {
		e, ok := m.employees[id]
		if ok && e.UserID() == userID && e.UsernameValue() != "" && employee.FoldUsername(e.UsernameValue()) == folded {
			return e, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) ListByOwner(ctx context.Context, userID uint) ([]*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*employee.Employee
	for id := uint(1); id <= m.nextID; id++ {
		if e, ok := m.employees[id]; ok && e.UserID() == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEmployeeRepository) ListActiveByOwner(ctx context.Context, userID uint) ([]*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*employee.Employee
	for id := uint(1); id <= m.nextID; id++ {
		if e, ok := m.employees[id]; ok && e.UserID() == userID && e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

// MockLinkRepository is an in-memory employee.LinkRepository keyed on the
// (chat_id, employee_id) natural key.
type MockLinkRepository struct {
	mu     sync.RWMutex
	links  map[[2]uint]*employee.Link
	nextID uint
}

func NewMockLinkRepository() *MockLinkRepository {
	return &MockLinkRepository{links: make(map[[2]uint]*employee.Link)}
}

func (m *MockLinkRepository) Upsert(ctx context.Context, l *employee.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{l.ChatID(), l.EmployeeID()}
	if existing, ok := m.links[key]; ok {
		l.SetID(existing.ID())
	} else if l.ID() == 0 {
		m.nextID++
		l.SetID(m.nextID)
	}
	m.links[key] = l
	return nil
}

func (m *MockLinkRepository) Update(ctx context.Context, l *employee.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[[2]uint{l.ChatID(), l.EmployeeID()}] = l
	return nil
}

func (m *MockLinkRepository) Delete(ctx context.Context, chatID, employeeID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.links, [2]uint{chatID, employeeID})
	return nil
}

func (m *MockLinkRepository) FindByChatAndEmployee(ctx context.Context, chatID, employeeID uint) (*employee.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.links[[2]uint{chatID, employeeID}]
	if !ok {
		return nil, employee.ErrLinkNotFound
	}
	return l, nil
}

func (m *MockLinkRepository) ListByChat(ctx context.Context, chatID uint) ([]*employee.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*employee.Link
	for id := uint(1); id <= m.nextID; id++ {
		for _, l := range m.links {
			if l.ID() == id && l.ChatID() == chatID {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (m *MockLinkRepository) CountActiveByChat(ctx context.Context, chatID uint) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, l := range m.links {
		if l.ChatID() == chatID && l.IsActive() {
			count++
		}
	}
	return count, nil
}

func (m *MockLinkRepository) ListByOwner(ctx context.Context, userID uint) ([]*employee.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*employee.Link
	for id := uint(1); id <= m.nextID; id++ {
		for _, l := range m.links {
			if l.ID() == id && l.UserID() == userID {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

// RemoteChat is the scripted state of one remote chat inside MockBotAPI.
type RemoteChat struct {
	Title     string
	Admins    []telegram.ChatMember
	Members   map[int64]telegram.ChatMember
	Count     int
	Gone      bool // getChat answers 400
	Forbidden bool // getChat answers 403
}

// KickCall records one kickChatMember invocation.
type KickCall struct {
	ChatID int64
	UserID int64
}

// SentMessage records one sendMessage invocation.
type SentMessage struct {
	ChatID int64
	Text   string
}

// MockBotAPI is a scripted Bot API. Chats are declared up front; the update
// stream is a queue of poll results consumed one per GetUpdates call.
type MockBotAPI struct {
	mu      sync.Mutex
	chats   map[int64]*RemoteChat
	updates [][]telegram.Update

	kicks    []KickCall
	messages []SentMessage

	kickStatus telegram.Status
}

func NewMockBotAPI() *MockBotAPI {
	return &MockBotAPI{
		chats:      make(map[int64]*RemoteChat),
		kickStatus: telegram.StatusOK,
	}
}

// AddChat registers a remote chat the scripted bot can see.
func (m *MockBotAPI) AddChat(chatID int64, rc *RemoteChat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc.Members == nil {
		rc.Members = make(map[int64]telegram.ChatMember)
	}
	m.chats[chatID] = rc
}

// QueueUpdates appends one poll result to the update stream.
func (m *MockBotAPI) QueueUpdates(updates ...telegram.Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, updates)
}

// SetKickStatus overrides the status kickChatMember reports.
func (m *MockBotAPI) SetKickStatus(s telegram.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kickStatus = s
}

func (m *MockBotAPI) Kicks() []KickCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]KickCall, len(m.kicks))
	copy(out, m.kicks)
	return out
}

func (m *MockBotAPI) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *MockBotAPI) GetMe(ctx context.Context) (*telegram.User, telegram.Status, error) {
	return &telegram.User{ID: 1, IsBot: true}, telegram.StatusOK, nil
}

func (m *MockBotAPI) GetChat(ctx context.Context, chatID int64) (*telegram.Chat, telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.chats[chatID]
	if !ok || rc.Gone {
		return nil, telegram.StatusNotFound, nil
	}
	if rc.Forbidden {
		return nil, telegram.StatusForbidden, nil
	}
	return &telegram.Chat{ID: chatID, Type: "group", Title: rc.Title}, telegram.StatusOK, nil
}

func (m *MockBotAPI) GetChatAdministrators(ctx context.Context, chatID int64) ([]telegram.ChatMember, telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.chats[chatID]
	if !ok || rc.Gone {
		return nil, telegram.StatusNotFound, nil
	}
	if rc.Forbidden {
		return nil, telegram.StatusForbidden, nil
	}
	return rc.Admins, telegram.StatusOK, nil
}

func (m *MockBotAPI) GetChatMembersCount(ctx context.Context, chatID int64) (int, telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.chats[chatID]
	if !ok || rc.Gone {
		return 0, telegram.StatusNotFound, nil
	}
	if rc.Forbidden {
		return 0, telegram.StatusForbidden, nil
	}
	return rc.Count, telegram.StatusOK, nil
}

func (m *MockBotAPI) GetChatMember(ctx context.Context, chatID, userID int64) (*telegram.ChatMember, telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.chats[chatID]
	if !ok || rc.Gone {
		return nil, telegram.StatusNotFound, nil
	}
	if rc.Forbidden {
		return nil, telegram.StatusForbidden, nil
	}
	member, ok := rc.Members[userID]
	if !ok {
		return nil, telegram.StatusNotFound, nil
	}
	return &member, telegram.StatusOK, nil
}

func (m *MockBotAPI) GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.updates) == 0 {
		return nil, telegram.StatusOK, nil
	}
	batch := m.updates[0]
	m.updates = m.updates[1:]
	var out []telegram.Update
	for _, u := range batch {
		if offset == 0 || u.UpdateID >= offset {
			out = append(out, u)
		}
	}
	return out, telegram.StatusOK, nil
}

func (m *MockBotAPI) SendMessage(ctx context.Context, chatID int64, text string) (telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, SentMessage{ChatID: chatID, Text: text})
	return telegram.StatusOK, nil
}

func (m *MockBotAPI) KickChatMember(ctx context.Context, chatID, userID int64) (telegram.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kicks = append(m.kicks, KickCall{ChatID: chatID, UserID: userID})
	if m.kickStatus != telegram.StatusOK {
		return m.kickStatus, nil
	}
	if rc, ok := m.chats[chatID]; ok {
		delete(rc.Members, userID)
	}
	return telegram.StatusOK, nil
}

// MockLogger records log calls and satisfies logger.Interface.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

// Entries returns the recorded log calls.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }
func (m *MockLogger) Fatal(msg string, args ...any) { m.log("FATAL", msg) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.log("ERROR", msg) }
func (m *MockLogger) Fatalw(msg string, keysAndValues ...interface{}) { m.log("FATAL", msg) }
