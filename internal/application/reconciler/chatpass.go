package reconciler

import (
	"context"

	"chatwarden/internal/domain/bot"
	"chatwarden/internal/domain/chat"
	"chatwarden/internal/domain/employee"
	"chatwarden/internal/infrastructure/telegram"
	"chatwarden/internal/shared/logger"
)

// reconcileChat runs the per-chat procedure in its strict order: access
// probe, admin ingest, existing-link audit, unlinked-employee probe, member
// count. Access loss is recorded for this (bot, user, chat) row only; other
// bots sharing the remote chat are untouched.
func (e *Engine) reconcileChat(ctx context.Context, api BotAPI, b *bot.Bot, c *chat.Chat, log logger.Interface) {
	log = log.With("chat_id", c.ID(), "telegram_chat_id", c.TelegramChatID())

	if c.TypeID() == chat.TypeBlocked {
		return
	}

	// Step 1: access probe. For removed chats this doubles as the revival
	// probe.
	remote, status, err := api.GetChat(ctx, c.TelegramChatID())
	switch status {
	case telegram.StatusNotFound:
		if c.TypeID() != chat.TypeRemoved {
			log.Warnw("chat no longer reachable, marking removed", "error", err)
		}
		c.MarkRemoved()
		e.saveChat(ctx, c, log)
		return
	case telegram.StatusForbidden:
		if c.StatusID() != chat.StatusAccessLost {
			log.Warnw("bot access forbidden, marking removed", "error", err)
		}
		c.MarkAccessLost()
		e.saveChat(ctx, c, log)
		return
	case telegram.StatusTransportError:
		log.Warnw("getChat failed, skipping chat this cycle", "error", err)
		return
	}

	if c.Revive() {
		log.Infow("chat access regained, reviving")
	}
	c.RecordTitle(remote.Title)

	policy := c.Policy()
	if policy.Skip {
		e.saveChat(ctx, c, log)
		return
	}

	// Step 2: admin roll-call, which also establishes the bot's standing.
	admins, adminsKnown := e.ingestAdmins(ctx, api, b, c, log)
	if c.TypeID() == chat.TypeRemoved {
		// The admin query hit a 403.
		e.saveChat(ctx, c, log)
		return
	}

	adminUsernames := make(map[string]bool, len(admins))
	for _, adm := range admins {
		if adm.User.Username != "" {
			adminUsernames[employee.FoldUsername(adm.User.Username)] = true
		}
	}

	// Step 4: audit every existing link against the remote chat.
	linked := e.auditLinks(ctx, api, b, c, policy, adminUsernames, adminsKnown, log)

	// Step 5: probe owner employees that have no link to this chat yet.
	e.probeUnlinked(ctx, api, c, linked, adminUsernames, log)

	// Step 6: member count and the unknown-user derivation.
	if policy.Count {
		e.applyCount(ctx, api, c, log)
	}

	e.saveChat(ctx, c, log)
}

// ingestAdmins fetches the admin list, updates the chat's status from the
// bot's presence in it, and upserts an admin link for every listed user
// (step 3). It reports whether the admin list was actually obtained.
func (e *Engine) ingestAdmins(ctx context.Context, api BotAPI, b *bot.Bot, c *chat.Chat, log logger.Interface) ([]telegram.ChatMember, bool) {
	admins, status, err := api.GetChatAdministrators(ctx, c.TelegramChatID())
	switch status {
	case telegram.StatusForbidden:
		log.Warnw("admin query forbidden, marking removed", "error", err)
		c.MarkAccessLost()
		return nil, false
	case telegram.StatusOK:
	default:
		log.Warnw("getChatAdministrators failed, skipping admin ingest this cycle",
			"status", status.String(),
			"error", err)
		return nil, false
	}

	botIsAdmin := false
	for _, adm := range admins {
		if adm.User.ID == b.TelegramUserID() {
			botIsAdmin = true
			break
		}
	}
	if botIsAdmin {
		c.MarkStatusOK()
	} else {
		c.MarkBotNotAdmin()
	}

	for _, adm := range admins {
		if adm.User.ID == b.TelegramUserID() {
			if botEmp := e.ensureBotEmployee(ctx, b, log); botEmp != nil {
				e.ensureLink(ctx, c, botEmp, true, log)
			}
			continue
		}

		emp, err := e.resolver.Resolve(ctx, c.UserID(), adm.User)
		if err != nil {
			log.Errorw("failed to resolve admin, skipping",
				"telegram_user_id", adm.User.ID,
				"error", err)
			continue
		}
		e.ensureLink(ctx, c, emp, true, log)
	}

	return admins, true
}

// auditLinks walks the stored links of one chat, verifies each member's
// presence, applies enforcement where the policy demands it, and stages
// identity updates otherwise. It returns the set of employee ids that hold a
// link, for the unlinked-employee probe.
func (e *Engine) auditLinks(
	ctx context.Context,
	api BotAPI,
	b *bot.Bot,
	c *chat.Chat,
	policy chat.Policy,
	adminUsernames map[string]bool,
	adminsKnown bool,
	log logger.Interface,
) map[uint]bool {
	links, err := e.links.ListByChat(ctx, c.ID())
	if err != nil {
		log.Errorw("failed to list links, skipping membership audit", "error", err)
		return nil
	}

	linked := make(map[uint]bool, len(links))
	for _, l := range links {
		linked[l.EmployeeID()] = true

		emp, err := e.employees.FindByID(ctx, l.EmployeeID())
		if err != nil {
			log.Errorw("failed to load linked employee, skipping",
				"employee_id", l.EmployeeID(),
				"error", err)
			continue
		}

		// The bot itself is never audited or enforced against.
		if emp.IsBot() && emp.TelegramIDValue() == b.TelegramUserID() {
			continue
		}

		// Kick notices name the member as the directory knows them, so the
		// stored name is captured before any refresh from the live profile.
		storedName := emp.FullName()

		present, ok := e.checkPresence(ctx, api, c, emp, adminUsernames, adminsKnown, log)
		if !ok {
			continue
		}

		if e.mustKick(c, policy, l, emp) {
			e.enforce(ctx, api, c, l, emp, storedName, present, log)
			continue
		}

		if !emp.IsActive() || !l.IsActive() {
			// Non-enforcing policy with an inactive side: the link just goes
			// dormant.
			e.deactivateLink(ctx, l, log)
			continue
		}

		if !present {
			e.deactivateLink(ctx, l, log)
			continue
		}

		if emp.Dirty() {
			if err := e.employees.Update(ctx, emp); err != nil {
				log.Errorw("failed to persist employee updates",
					"employee_id", emp.ID(),
					"error", err)
			}
		}
	}
	return linked
}

// checkPresence verifies one member's presence in the chat, refreshing the
// employee's identity fields from the live record when possible. ok is false
// when presence could not be established this cycle.
func (e *Engine) checkPresence(
	ctx context.Context,
	api BotAPI,
	c *chat.Chat,
	emp *employee.Employee,
	adminUsernames map[string]bool,
	adminsKnown bool,
	log logger.Interface,
) (present bool, ok bool) {
	if emp.HasTelegramID() {
		member, status, err := api.GetChatMember(ctx, c.TelegramChatID(), emp.TelegramIDValue())
		switch status {
		case telegram.StatusOK:
			if member.Present() {
				emp.UpdateUsername(member.User.Username)
				emp.UpdateFullName(member.User.DisplayName())
				return true, true
			}
			return false, true
		case telegram.StatusNotFound:
			return false, true
		default:
			log.Warnw("getChatMember failed, skipping member this cycle",
				"employee_id", emp.ID(),
				"telegram_user_id", emp.TelegramIDValue(),
				"error", err)
			return false, false
		}
	}

	// Without a remote id the only presence signal is the admin list.
	if !adminsKnown {
		return false, false
	}
	return adminUsernames[employee.FoldUsername(emp.UsernameValue())], true
}

// mustKick applies the policy table: enforcing chats remove members whose
// link or employee record is inactive, and internal chats additionally
// remove externals. While the bot lacks admin rights no enforcement is
// possible; the inactive link goes dormant and the next cycle retries.
func (e *Engine) mustKick(c *chat.Chat, policy chat.Policy, l *employee.Link, emp *employee.Employee) bool {
	if !policy.Enforces() || emp.IsBot() {
		return false
	}
	if c.StatusID() == chat.StatusBotNotAdmin {
		return false
	}
	if policy.KickInactive && (!l.IsActive() || !emp.IsActive()) {
		return true
	}
	return policy.KickExternal && emp.IsExternal()
}

// enforce removes a member from the chat. The link is hard-deleted only
// after the remote removal succeeds (a 400 "already absent" counts as
// success); on failure the link stays inactive so the next cycle retries.
func (e *Engine) enforce(ctx context.Context, api BotAPI, c *chat.Chat, l *employee.Link, emp *employee.Employee, name string, present bool, log logger.Interface) {
	if !emp.HasTelegramID() {
		// Nothing to kick remotely without an id; the link goes dormant.
		e.deactivateLink(ctx, l, log)
		return
	}

	status, err := api.KickChatMember(ctx, c.TelegramChatID(), emp.TelegramIDValue())
	if status != telegram.StatusOK {
		log.Warnw("kick failed, keeping inactive link for retry",
			"employee_id", emp.ID(),
			"telegram_user_id", emp.TelegramIDValue(),
			"status", status.String(),
			"error", err)
		e.deactivateLink(ctx, l, log)
		return
	}

	if err := e.links.Delete(ctx, c.ID(), emp.ID()); err != nil {
		log.Errorw("failed to delete link after kick", "employee_id", emp.ID(), "error", err)
		return
	}

	log.Infow("member removed by enforcement",
		"employee_id", emp.ID(),
		"telegram_user_id", emp.TelegramIDValue(),
		"was_present", present)

	if status, err := api.SendMessage(ctx, c.TelegramChatID(), kickNotification(name)); status != telegram.StatusOK {
		log.Warnw("kick notification delivery failed", "status", status.String(), "error", err)
	}
}

// probeUnlinked checks whether any active employee of the owner is present
// in the chat without a link, first by remote id, then by username against
// the admin list. Employees with neither identifier are skipped.
func (e *Engine) probeUnlinked(
	ctx context.Context,
	api BotAPI,
	c *chat.Chat,
	linked map[uint]bool,
	adminUsernames map[string]bool,
	log logger.Interface,
) {
	actives, err := e.employees.ListActiveByOwner(ctx, c.UserID())
	if err != nil {
		log.Errorw("failed to list active employees, skipping probe", "error", err)
		return
	}

	for _, emp := range actives {
		if linked[emp.ID()] || emp.IsBot() {
			continue
		}

		if emp.HasTelegramID() {
			member, status, err := api.GetChatMember(ctx, c.TelegramChatID(), emp.TelegramIDValue())
			switch status {
			case telegram.StatusOK:
				if !member.Present() {
					continue
				}
				emp.UpdateUsername(member.User.Username)
				emp.UpdateFullName(member.User.DisplayName())
				if emp.Dirty() {
					if err := e.employees.Update(ctx, emp); err != nil {
						log.Errorw("failed to persist employee updates",
							"employee_id", emp.ID(),
							"error", err)
					}
				}
				e.ensureLink(ctx, c, emp, false, log)
			case telegram.StatusNotFound:
				// Not a member.
			default:
				log.Warnw("membership probe failed, skipping employee this cycle",
					"employee_id", emp.ID(),
					"error", err)
			}
			continue
		}

		if emp.UsernameValue() != "" && adminUsernames[employee.FoldUsername(emp.UsernameValue())] {
			e.ensureLink(ctx, c, emp, true, log)
		}
	}
}

// applyCount fetches the remote member count and derives unknown_user from
// the active links. The chat is written only when the values moved.
func (e *Engine) applyCount(ctx context.Context, api BotAPI, c *chat.Chat, log logger.Interface) {
	count, status, err := api.GetChatMembersCount(ctx, c.TelegramChatID())
	if status != telegram.StatusOK {
		log.Warnw("getChatMembersCount failed, keeping previous counters",
			"status", status.String(),
			"error", err)
		return
	}

	known, err := e.links.CountActiveByChat(ctx, c.ID())
	if err != nil {
		log.Errorw("failed to count active links, keeping previous counters", "error", err)
		return
	}

	if c.ApplyMemberCount(count, known) {
		log.Debugw("member counters updated",
			"user_num", c.UserNum(),
			"unknown_user", c.UnknownUser())
	}
}
