package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/automod"
	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/moderation"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
	"github.com/TheShield2594/vortexchat-sub001/internal/ratelimit"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

const maxMessageLength = 4000

// MessageService handles message creation and pin management. Sends pass
// through the timeout gate and the guild's automod rules before storage.
type MessageService struct {
	messages  database.MessageRepository
	rules     database.AutomodRuleRepository
	mod       *ModerationService
	checker   *PermissionChecker
	limiter   *ratelimit.Limiter
	snowflake *snowflake.Generator
	now       func() time.Time
}

func NewMessageService(
	messages database.MessageRepository,
	rules database.AutomodRuleRepository,
	mod *ModerationService,
	checker *PermissionChecker,
	limiter *ratelimit.Limiter,
	gen *snowflake.Generator,
) *MessageService {
	return &MessageService{
		messages:  messages,
		rules:     rules,
		mod:       mod,
		checker:   checker,
		limiter:   limiter,
		snowflake: gen,
		now:       time.Now,
	}
}

// SendMessage stores a message after membership, timeout, and automod
// checks. A rule whose actions include delete_message blocks the message;
// timeout_member and send_alert actions run even when the message goes
// through.
func (s *MessageService) SendMessage(ctx context.Context, guildID, channelID, authorID int64, content string) (*models.Message, error) {
	if content == "" {
		return nil, BadRequest("EMPTY_MESSAGE", "message content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, BadRequest("MESSAGE_TOO_LONG", "message content exceeds the maximum length")
	}

	_, actor, err := s.checker.ActorContext(ctx, guildID, authorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsMember && !actor.Snapshot.IsOwner {
		return nil, Forbidden("FORBIDDEN", "you are not a member of this guild")
	}

	timedOut, err := s.mod.IsTimedOut(ctx, guildID, authorID)
	if err != nil {
		return nil, err
	}
	if timedOut {
		return nil, Forbidden("TIMED_OUT", "you are timed out in this guild")
	}

	if !actor.Snapshot.IsAdmin {
		if err := s.screen(ctx, guildID, authorID, content); err != nil {
			return nil, err
		}
	}

	msg := &models.Message{
		ID:        s.snowflake.Generate().Int64(),
		ChannelID: channelID,
		GuildID:   guildID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return msg, nil
}

// screen runs the guild's enabled automod rules over the outgoing message.
// Owners and administrators never reach it. Rate-spam rules consume the
// shared sliding-window limiter keyed per rule, guild, and author.
func (s *MessageService) screen(ctx context.Context, guildID, authorID int64, content string) error {
	rules, err := s.rules.GetByGuildID(ctx, guildID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}

	for i := range rules {
		rule := &rules[i]
		if !rule.Enabled {
			continue
		}

		tripped := false
		switch rule.TriggerType {
		case automod.TriggerRateSpam:
			var cfg automod.RateSpamConfig
			if err := json.Unmarshal(rule.Config, &cfg); err != nil {
				continue
			}
			key := ratelimit.Key("automod", rule.ID, guildID, authorID)
			res, err := s.limiter.Check(key, cfg.MaxMessages, time.Duration(cfg.IntervalSeconds)*time.Second)
			if err != nil {
				continue
			}
			tripped = !res.Allowed
		default:
			tripped = automod.Triggered(rule, content)
		}

		if tripped {
			if err := s.enforce(ctx, guildID, authorID, rule); err != nil {
				return err
			}
		}
	}
	return nil
}

// enforce applies a tripped rule's action list against the author. It
// returns a Forbidden error when the list deletes the message, nil when
// the message may still be stored.
func (s *MessageService) enforce(ctx context.Context, guildID, authorID int64, rule *models.AutomodRule) error {
	actions, err := automod.DecodeActions(rule.Actions)
	if err != nil {
		log.Printf("automod: rule %d has undecodable actions: %v", rule.ID, err)
		return nil
	}

	var blocked error
	for _, action := range actions {
		switch action.Type {
		case automod.ActionDeleteMessage:
			blocked = Forbidden("AUTOMOD_BLOCKED", "message blocked by automod rule "+rule.Name)

		case automod.ActionTimeoutMember:
			timeout := &models.Timeout{
				GuildID:     guildID,
				UserID:      authorID,
				Until:       s.now().Add(time.Duration(action.DurationSeconds) * time.Second),
				ModeratorID: guildID, // system-applied, attributed to the guild
				Reason:      &rule.Name,
			}
			if err := s.mod.timeouts.Upsert(ctx, timeout); err != nil {
				log.Printf("automod: apply timeout for rule %d: %v", rule.ID, err)
			}

		case automod.ActionSendAlert:
			alert := &models.Message{
				ID:        s.snowflake.Generate().Int64(),
				ChannelID: action.AlertChannelID,
				GuildID:   guildID,
				AuthorID:  guildID, // system-authored
				Content:   "Automod rule \"" + rule.Name + "\" was triggered.",
				CreatedAt: s.now(),
			}
			if err := s.messages.Create(ctx, alert); err != nil {
				log.Printf("automod: send alert for rule %d: %v", rule.ID, err)
			}
		}
	}
	return blocked
}

// GetMessages returns a page of channel history, newest first.
func (s *MessageService) GetMessages(ctx context.Context, guildID, channelID, userID int64, before *int64, limit int) ([]models.Message, error) {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsMember && !actor.Snapshot.IsOwner {
		return nil, Forbidden("FORBIDDEN", "you are not a member of this guild")
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	msgs, err := s.messages.GetByChannelID(ctx, channelID, before, limit)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return msgs, nil
}

// PinMessage marks a message as pinned. Requires MANAGE_MESSAGES.
func (s *MessageService) PinMessage(ctx context.Context, guildID, userID, messageID int64) error {
	return s.setPinned(ctx, guildID, userID, messageID, true, moderation.ActionMessagePin)
}

// UnpinMessage clears a message's pin. Requires MANAGE_MESSAGES.
func (s *MessageService) UnpinMessage(ctx context.Context, guildID, userID, messageID int64) error {
	return s.setPinned(ctx, guildID, userID, messageID, false, moderation.ActionMessageUnpin)
}

func (s *MessageService) setPinned(ctx context.Context, guildID, userID, messageID int64, pinned bool, action moderation.Action) error {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if err := verdictError(moderation.Authorize(action, actor, nil)); err != nil {
		return err
	}

	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if msg == nil || msg.GuildID != guildID {
		return NotFound("NOT_FOUND", "message not found")
	}
	if msg.Pinned == pinned {
		return nil
	}

	if err := s.messages.SetPinned(ctx, messageID, pinned); err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	return nil
}

// DeleteMessage removes a message. Authors may delete their own; anyone
// else needs MANAGE_MESSAGES.
func (s *MessageService) DeleteMessage(ctx context.Context, guildID, userID, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if msg == nil || msg.GuildID != guildID {
		return NotFound("NOT_FOUND", "message not found")
	}

	if msg.AuthorID != userID {
		_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
		if err != nil {
			return err
		}
		if !actor.Snapshot.Can(permissions.PermManageMessages) {
			return Forbidden("MISSING_PERMISSIONS", "requires the MANAGE_MESSAGES permission")
		}
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	return nil
}
