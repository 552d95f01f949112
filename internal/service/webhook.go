package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/moderation"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

// WebhookService manages guild webhooks. All operations require
// MANAGE_WEBHOOKS; tokens are opaque and returned only on creation.
type WebhookService struct {
	webhooks  database.WebhookRepository
	checker   *PermissionChecker
	recorder  *AuditRecorder
	snowflake *snowflake.Generator
}

func NewWebhookService(
	webhooks database.WebhookRepository,
	checker *PermissionChecker,
	recorder *AuditRecorder,
	gen *snowflake.Generator,
) *WebhookService {
	return &WebhookService{
		webhooks:  webhooks,
		checker:   checker,
		recorder:  recorder,
		snowflake: gen,
	}
}

func (s *WebhookService) requireManage(ctx context.Context, guildID, userID int64) error {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return err
	}
	return verdictError(moderation.Authorize(moderation.ActionWebhookManage, actor, nil))
}

// CreateWebhook registers a webhook on a channel and returns it with its
// token. The token is two concatenated UUIDs and is never derivable from
// the webhook's ID.
func (s *WebhookService) CreateWebhook(ctx context.Context, guildID, channelID, userID int64, name string) (*models.Webhook, error) {
	if name == "" {
		return nil, BadRequest("INVALID_WEBHOOK", "webhook name is required")
	}
	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return nil, err
	}

	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	webhook := &models.Webhook{
		ID:        s.snowflake.Generate().Int64(),
		GuildID:   guildID,
		ChannelID: channelID,
		Name:      name,
		Token:     token,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := s.webhooks.Create(ctx, webhook); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, userID, AuditWebhookCreate, &webhook.ID, "webhook", map[string]any{"name": name})
	return webhook, nil
}

// ListWebhooks returns the guild's webhooks with tokens redacted.
func (s *WebhookService) ListWebhooks(ctx context.Context, guildID, userID int64) ([]models.Webhook, error) {
	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return nil, err
	}

	webhooks, err := s.webhooks.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	for i := range webhooks {
		webhooks[i].Token = ""
	}
	return webhooks, nil
}

// UpdateWebhook renames a webhook.
func (s *WebhookService) UpdateWebhook(ctx context.Context, guildID, userID, webhookID int64, name string) (*models.Webhook, error) {
	if name == "" {
		return nil, BadRequest("INVALID_WEBHOOK", "webhook name is required")
	}
	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return nil, err
	}

	webhook, err := s.guildWebhook(ctx, guildID, webhookID)
	if err != nil {
		return nil, err
	}
	webhook.Name = name
	if err := s.webhooks.Update(ctx, webhook); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	webhook.Token = ""
	return webhook, nil
}

// DeleteWebhook removes a webhook, revoking its token.
func (s *WebhookService) DeleteWebhook(ctx context.Context, guildID, userID, webhookID int64) error {
	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return err
	}
	if _, err := s.guildWebhook(ctx, guildID, webhookID); err != nil {
		return err
	}

	if err := s.webhooks.Delete(ctx, webhookID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, userID, AuditWebhookDelete, &webhookID, "webhook", nil)
	return nil
}

func (s *WebhookService) guildWebhook(ctx context.Context, guildID, webhookID int64) (*models.Webhook, error) {
	webhook, err := s.webhooks.GetByID(ctx, webhookID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if webhook == nil || webhook.GuildID != guildID {
		return nil, NotFound("NOT_FOUND", "webhook not found")
	}
	return webhook, nil
}
