package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

// Audit action names recorded in the log.
const (
	AuditMemberKick    = "member.kick"
	AuditTimeoutApply  = "timeout.apply"
	AuditTimeoutRemove = "timeout.remove"
	AuditRoleAssign    = "role.assign"
	AuditRoleRemove    = "role.remove"
	AuditAutomodCreate = "automod.create"
	AuditAutomodUpdate = "automod.update"
	AuditAutomodDelete = "automod.delete"
	AuditWebhookCreate = "webhook.create"
	AuditWebhookDelete = "webhook.delete"
)

// AuditRecorder writes audit entries off the request path. Appends run on
// their own goroutine with a fresh context so a slow or failed write never
// delays or fails the action it records.
type AuditRecorder struct {
	audit     database.AuditRepository
	snowflake *snowflake.Generator
}

func NewAuditRecorder(audit database.AuditRepository, gen *snowflake.Generator) *AuditRecorder {
	return &AuditRecorder{audit: audit, snowflake: gen}
}

// Record appends an audit entry asynchronously. changes may be nil.
func (r *AuditRecorder) Record(guildID, actorID int64, action string, targetID *int64, targetType string, changes any) {
	entry := &models.AuditEntry{
		ID:         r.snowflake.Generate().Int64(),
		GuildID:    guildID,
		ActorID:    actorID,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
		CreatedAt:  time.Now(),
	}
	if changes != nil {
		raw, err := json.Marshal(changes)
		if err != nil {
			log.Printf("audit: marshal changes for %s: %v", action, err)
		} else {
			entry.Changes = raw
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.audit.Append(ctx, entry); err != nil {
			log.Printf("audit: append %s in guild %d: %v", action, guildID, err)
		}
	}()
}

// AuditService exposes the audit log for reading.
type AuditService struct {
	audit   database.AuditRepository
	checker *PermissionChecker
}

func NewAuditService(audit database.AuditRepository, checker *PermissionChecker) *AuditService {
	return &AuditService{audit: audit, checker: checker}
}

// GetGuildAuditLog returns recent audit entries, newest first. Reading the
// log requires MANAGE_GUILD.
func (s *AuditService) GetGuildAuditLog(ctx context.Context, guildID, userID int64, limit int) ([]models.AuditEntry, error) {
	if err := s.checker.RequireGuildPermission(ctx, guildID, userID, permissions.PermManageGuild); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, err := s.audit.GetByGuildID(ctx, guildID, limit)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return entries, nil
}
