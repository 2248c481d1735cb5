package reconciler

import (
	"context"

	"chatwarden/internal/domain/bot"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/infrastructure/telegram"
	"chatwarden/internal/shared/logger"
)

// drainEvents applies the membership events polled at the start of the bot
// pass (step 7 of the per-chat procedure): joins upsert an active link,
// leaves deactivate it, and the bot's own standing changes toggle its link.
// Events for chats under a skip policy are dropped.
func (e *Engine) drainEvents(ctx context.Context, b *bot.Bot, events []telegram.MemberEvent, byRemoteID map[int64]*chat.Chat, log logger.Interface) {
	for _, ev := range events {
		c, ok := byRemoteID[ev.ChatID]
		if !ok || c.Policy().Skip {
			continue
		}

		c.RecordTitle(ev.ChatTitle)

		switch ev.Kind {
		case telegram.EventMessageFrom, telegram.EventUserJoined:
			e.applyJoin(ctx, b, c, ev.User, log)
		case telegram.EventUserLeft:
			e.applyLeave(ctx, b, c, ev.User, log)
		case telegram.EventBotStatusChanged:
			e.applyBotStatus(ctx, b, c, ev, log)
		}

		e.saveChat(ctx, c, log)
	}
}

func (e *Engine) applyJoin(ctx context.Context, b *bot.Bot, c *chat.Chat, u telegram.User, log logger.Interface) {
	if u.ID == b.TelegramUserID() {
		if botEmp := e.ensureBotEmployee(ctx, b, log); botEmp != nil {
			e.ensureLink(ctx, c, botEmp, false, log)
		}
		return
	}

	emp, err := e.resolver.Resolve(ctx, c.UserID(), u)
	if err != nil {
		log.Errorw("failed to resolve joining user, skipping",
			"chat_id", c.ID(),
			"telegram_user_id", u.ID,
			"error", err)
		return
	}
	e.ensureLink(ctx, c, emp, false, log)
}

func (e *Engine) applyLeave(ctx context.Context, b *bot.Bot, c *chat.Chat, u telegram.User, log logger.Interface) {
	if u.ID == b.TelegramUserID() {
		// The bot leaving shows up as a 403 on the next access probe; the
		// local link is closed here.
		e.deactivateBotLink(ctx, b, c, log)
		return
	}

	emp, err := e.resolver.Resolve(ctx, c.UserID(), u)
	if err != nil {
		log.Errorw("failed to resolve leaving user, skipping",
			"chat_id", c.ID(),
			"telegram_user_id", u.ID,
			"error", err)
		return
	}

	l, err := e.links.FindByChatAndEmployee(ctx, c.ID(), emp.ID())
	if err != nil {
		return
	}
	e.deactivateLink(ctx, l, log)
}

// applyBotStatus handles my_chat_member: the member payload is the bot's own
// record, so a present new status is a join and an absent one a leave.
func (e *Engine) applyBotStatus(ctx context.Context, b *bot.Bot, c *chat.Chat, ev telegram.MemberEvent, log logger.Interface) {
	present := ev.NewStatus != "left" && ev.NewStatus != "kicked"
	log.Infow("bot standing changed",
		"chat_id", c.ID(),
		"old_status", ev.OldStatus,
		"new_status", ev.NewStatus)

	if present {
		e.applyJoin(ctx, b, c, ev.User, log)
		return
	}
	e.applyLeave(ctx, b, c, ev.User, log)
}

func (e *Engine) deactivateBotLink(ctx context.Context, b *bot.Bot, c *chat.Chat, log logger.Interface) {
	botEmp := e.ensureBotEmployee(ctx, b, log)
	if botEmp == nil {
		return
	}
	l, err := e.links.FindByChatAndEmployee(ctx, c.ID(), botEmp.ID())
	if err != nil {
		return
	}
	e.deactivateLink(ctx, l, log)
}
