// Package reconciler implements the membership reconciliation engine. One
// cycle sweeps every active owner, each of the owner's active bots, and each
// bot's chats (stored ones plus chats discovered through the update stream),
// converging the local model on the remote ground truth and enforcing chat
// policy outward where it demands it.
package reconciler

import (
	"context"
	"errors"
	"time"

	"chatwarden/internal/domain/bot"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/domain/owner"
	"chatwarden/internal/infrastructure/telegram"
	"chatwarden/internal/shared/biztime"
	"chatwarden/internal/shared/logger"
)

// Engine runs the reconciliation cycle. It is driven by a singleton-mode
// scheduler job, so a cycle never overlaps itself; the per-bot cursors need
// no locking.
type Engine struct {
	owners    owner.Repository
	bots      bot.Repository
	chats     chat.Repository
	employees employee.Repository
	links     employee.LinkRepository
	resolver  *Resolver
	factory   APIFactory
	logger    logger.Interface

	lookback    time.Duration
	pollTimeout int

	cursors map[uint]*telegram.Cursor
}

// Config carries the engine tunables.
type Config struct {
	// Lookback bounds how old an update's message may be and still be
	// processed. Default 24 hours.
	Lookback time.Duration
	// PollTimeout is the getUpdates long-poll timeout in seconds; 0 polls
	// without waiting.
	PollTimeout int
}

// NewEngine creates a new reconciliation engine.
func NewEngine(
	owners owner.Repository,
	bots bot.Repository,
	chats chat.Repository,
	employees employee.Repository,
	links employee.LinkRepository,
	factory APIFactory,
	cfg Config,
	log logger.Interface,
) *Engine {
	if cfg.Lookback <= 0 {
		cfg.Lookback = 24 * time.Hour
	}
	return &Engine{
		owners:      owners,
		bots:        bots,
		chats:       chats,
		employees:   employees,
		links:       links,
		resolver:    NewResolver(employees, log),
		factory:     factory,
		logger:      log,
		lookback:    cfg.Lookback,
		pollTimeout: cfg.PollTimeout,
		cursors:     make(map[uint]*telegram.Cursor),
	}
}

// Execute runs one full cycle and reports how many chats were processed.
// Per-entity failures are logged and skipped; the next cycle retries them.
// Only a failure to enumerate owners surfaces as an error.
func (e *Engine) Execute(ctx context.Context) (int, error) {
	started := biztime.NowUTC()

	owners, err := e.owners.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, ow := range owners {
		processed += e.sweepOwner(ctx, ow)
		if ctx.Err() != nil {
			break
		}
	}

	e.logger.Infow("reconciliation cycle completed",
		"owners", len(owners),
		"chats_processed", processed,
		"duration", time.Since(started))
	return processed, nil
}

func (e *Engine) sweepOwner(ctx context.Context, ow *owner.Owner) int {
	bots, err := e.bots.ListActiveByOwner(ctx, ow.ID())
	if err != nil {
		e.logger.Errorw("failed to list bots, skipping owner", "user_id", ow.ID(), "error", err)
		return 0
	}

	processed := 0
	for _, b := range bots {
		processed += e.sweepBot(ctx, ow, b)
		if ctx.Err() != nil {
			break
		}
	}
	return processed
}

// sweepBot runs the per-bot pass: poll the update stream once, process every
// chat in the union of stored and freshly discovered ones, then drain the
// polled membership events.
func (e *Engine) sweepBot(ctx context.Context, ow *owner.Owner, b *bot.Bot) int {
	log := e.logger.With("user_id", ow.ID(), "bot_id", b.ID())
	api := e.factory(b.Token())

	events := e.pollUpdates(ctx, api, b, log)

	stored, err := e.chats.ListByOwnerAndBot(ctx, ow.ID(), b.ID())
	if err != nil {
		log.Errorw("failed to list chats, skipping bot", "error", err)
		return 0
	}

	byRemoteID := make(map[int64]*chat.Chat, len(stored))
	for _, c := range stored {
		byRemoteID[c.TelegramChatID()] = c
	}

	// First contact: chats seen in the update stream but absent locally.
	for _, ev := range events {
		if _, ok := byRemoteID[ev.ChatID]; ok {
			continue
		}
		c := e.firstContact(ctx, api, b, ev.ChatID, ev.ChatTitle, log)
		if c != nil {
			byRemoteID[ev.ChatID] = c
		}
	}

	processed := 0
	for _, c := range byRemoteID {
		e.reconcileChat(ctx, api, b, c, log)
		processed++
		if ctx.Err() != nil {
			return processed
		}
	}

	e.drainEvents(ctx, b, events, byRemoteID, log)
	return processed
}

// pollUpdates performs the single per-cycle poll for one bot and returns the
// membership events inside the look-back window. The bootstrap poll always
// yields nothing: pre-startup history is never processed.
func (e *Engine) pollUpdates(ctx context.Context, api BotAPI, b *bot.Bot, log logger.Interface) []telegram.MemberEvent {
	cursor := e.cursor(b.ID())

	raw, status, err := api.GetUpdates(ctx, cursor.Offset(), e.pollTimeout)
	if status != telegram.StatusOK {
		log.Warnw("getUpdates failed, skipping update drain this cycle",
			"status", status.String(),
			"error", err)
		return nil
	}

	fresh := cursor.Observe(raw)
	if len(fresh) == 0 {
		return nil
	}

	horizon := biztime.NowUTC().Add(-e.lookback).Unix()
	var events []telegram.MemberEvent
	for _, u := range fresh {
		for _, ev := range telegram.Events(u) {
			if ev.Date < horizon {
				continue
			}
			events = append(events, ev)
		}
	}

	log.Debugw("update stream polled",
		"updates", len(fresh),
		"events", len(events),
		"offset", cursor.Offset())
	return events
}

func (e *Engine) cursor(botID uint) *telegram.Cursor {
	c, ok := e.cursors[botID]
	if !ok {
		c = telegram.NewCursor()
		e.cursors[botID] = c
	}
	return c
}

// firstContact records a newly observed chat: a type "new" row with zero
// counters, the bot itself registered as a member, and the welcome message
// sent at most once. A send failure is logged and never retried.
func (e *Engine) firstContact(ctx context.Context, api BotAPI, b *bot.Bot, telegramChatID int64, title string, log logger.Interface) *chat.Chat {
	c, err := chat.NewChat(b.ID(), b.UserID(), telegramChatID, title)
	if err != nil {
		log.Errorw("failed to build chat record", "telegram_chat_id", telegramChatID, "error", err)
		return nil
	}
	if err := e.chats.Create(ctx, c); err != nil {
		log.Errorw("failed to create chat", "telegram_chat_id", telegramChatID, "error", err)
		return nil
	}

	log.Infow("new chat discovered",
		"chat_id", c.ID(),
		"telegram_chat_id", telegramChatID,
		"title", title)

	if botEmp := e.ensureBotEmployee(ctx, b, log); botEmp != nil {
		e.ensureLink(ctx, c, botEmp, false, log)
	}

	if status, err := api.SendMessage(ctx, telegramChatID, welcomeMessage); status != telegram.StatusOK {
		log.Warnw("welcome message delivery failed",
			"chat_id", c.ID(),
			"telegram_chat_id", telegramChatID,
			"status", status.String(),
			"error", err)
	}
	return c
}

// ensureBotEmployee finds or creates the employee record representing the
// bot itself. This is the only path that produces is_bot rows.
func (e *Engine) ensureBotEmployee(ctx context.Context, b *bot.Bot, log logger.Interface) *employee.Employee {
	if b.TelegramUserID() == 0 {
		return nil
	}

	emp, err := e.employees.FindByTelegramID(ctx, b.UserID(), b.TelegramUserID())
	if err == nil {
		return emp
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		log.Errorw("failed to look up bot employee", "error", err)
		return nil
	}

	emp = employee.NewBotEmployee(b.UserID(), b.TelegramUserID(), "", b.Name())
	if err := e.employees.Create(ctx, emp); err != nil {
		log.Errorw("failed to register bot employee", "error", err)
		return nil
	}

	log.Infow("bot registered as employee",
		"employee_id", emp.ID(),
		"telegram_user_id", b.TelegramUserID())
	return emp
}

// ensureLink activates (and optionally promotes) an existing link or creates
// a fresh one. Admin standing is never demoted here; only the admin ingest
// knows who stopped being an admin.
func (e *Engine) ensureLink(ctx context.Context, c *chat.Chat, emp *employee.Employee, isAdmin bool, log logger.Interface) {
	l, err := e.links.FindByChatAndEmployee(ctx, c.ID(), emp.ID())
	if err == nil {
		l.Activate()
		if isAdmin {
			l.SetAdmin(true)
		}
		if l.Dirty() {
			if err := e.links.Update(ctx, l); err != nil {
				log.Errorw("failed to update link",
					"chat_id", c.ID(),
					"employee_id", emp.ID(),
					"error", err)
			}
		}
		return
	}
	if !errors.Is(err, employee.ErrLinkNotFound) {
		log.Errorw("failed to look up link", "chat_id", c.ID(), "employee_id", emp.ID(), "error", err)
		return
	}

	l, err = employee.NewLink(c.ID(), emp.ID(), c.UserID(), isAdmin)
	if err != nil {
		log.Errorw("failed to build link", "chat_id", c.ID(), "employee_id", emp.ID(), "error", err)
		return
	}
	if err := e.links.Upsert(ctx, l); err != nil {
		log.Errorw("failed to upsert link", "chat_id", c.ID(), "employee_id", emp.ID(), "error", err)
	}
}

// deactivateLink marks a membership as ended without deleting the row.
func (e *Engine) deactivateLink(ctx context.Context, l *employee.Link, log logger.Interface) {
	l.Deactivate()
	if !l.Dirty() {
		return
	}
	if err := e.links.Update(ctx, l); err != nil {
		log.Errorw("failed to deactivate link",
			"chat_id", l.ChatID(),
			"employee_id", l.EmployeeID(),
			"error", err)
	}
}

// saveChat persists a chat only when a mutation actually changed it, so an
// unchanged remote state produces a zero-delta cycle.
func (e *Engine) saveChat(ctx context.Context, c *chat.Chat, log logger.Interface) {
	if !c.Dirty() {
		return
	}
	if err := e.chats.Update(ctx, c); err != nil {
		log.Errorw("failed to persist chat",
			"chat_id", c.ID(),
			"telegram_chat_id", c.TelegramChatID(),
			"error", err)
	}
}
