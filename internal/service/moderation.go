package service

import (
	"context"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/moderation"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
)

// MaxTimeoutDuration caps a single timeout at 28 days.
const MaxTimeoutDuration = 28 * 24 * time.Hour

// ModerationService performs kicks and timeouts. Every mutation runs the
// moderation authorizer over fresh actor and target snapshots before
// touching storage.
type ModerationService struct {
	members  database.MemberRepository
	timeouts database.TimeoutRepository
	checker  *PermissionChecker
	recorder *AuditRecorder
	now      func() time.Time
}

func NewModerationService(
	members database.MemberRepository,
	timeouts database.TimeoutRepository,
	checker *PermissionChecker,
	recorder *AuditRecorder,
) *ModerationService {
	return &ModerationService{
		members:  members,
		timeouts: timeouts,
		checker:  checker,
		recorder: recorder,
		now:      time.Now,
	}
}

// KickMember removes a member from the guild. The actor must hold
// KICK_MEMBERS and, unless they own the guild, outrank the target.
func (s *ModerationService) KickMember(ctx context.Context, guildID, actorID, targetID int64, reason *string) error {
	guild, actor, err := s.checker.ActorContext(ctx, guildID, actorID)
	if err != nil {
		return err
	}
	target, err := s.checker.TargetContext(ctx, guild, targetID)
	if err != nil {
		return err
	}
	if err := verdictError(moderation.Authorize(moderation.ActionKick, actor, target)); err != nil {
		return err
	}

	if err := s.members.Delete(ctx, guildID, targetID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	// A kicked member's timeout record is meaningless once they are gone.
	_ = s.timeouts.Delete(ctx, guildID, targetID)

	s.recorder.Record(guildID, actorID, AuditMemberKick, &targetID, "member", map[string]any{"reason": reason})
	return nil
}

// ApplyTimeout mutes a member until the computed expiry. A member who is
// already timed out gets the new expiry, longer or shorter; there is never
// more than one timeout per member.
func (s *ModerationService) ApplyTimeout(ctx context.Context, guildID, actorID, targetID int64, durationSeconds int64, reason *string) (*models.Timeout, error) {
	if durationSeconds <= 0 {
		return nil, BadRequest("INVALID_DURATION", "timeout duration must be positive")
	}
	duration := time.Duration(durationSeconds) * time.Second
	if duration > MaxTimeoutDuration {
		return nil, BadRequest("INVALID_DURATION", "timeout duration cannot exceed 28 days")
	}

	guild, actor, err := s.checker.ActorContext(ctx, guildID, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.checker.TargetContext(ctx, guild, targetID)
	if err != nil {
		return nil, err
	}
	if err := verdictError(moderation.Authorize(moderation.ActionTimeoutApply, actor, target)); err != nil {
		return nil, err
	}

	timeout := &models.Timeout{
		GuildID:     guildID,
		UserID:      targetID,
		Until:       s.now().Add(duration),
		ModeratorID: actorID,
		Reason:      reason,
	}
	if err := s.timeouts.Upsert(ctx, timeout); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, actorID, AuditTimeoutApply, &targetID, "member", map[string]any{
		"until":  timeout.Until,
		"reason": reason,
	})
	return timeout, nil
}

// RemoveTimeout lifts a member's timeout early. Removing a timeout that
// does not exist, or has already expired, is NotFound.
func (s *ModerationService) RemoveTimeout(ctx context.Context, guildID, actorID, targetID int64) error {
	guild, actor, err := s.checker.ActorContext(ctx, guildID, actorID)
	if err != nil {
		return err
	}
	target, err := s.checker.TargetContext(ctx, guild, targetID)
	if err != nil {
		return err
	}
	if err := verdictError(moderation.Authorize(moderation.ActionTimeoutRemove, actor, target)); err != nil {
		return err
	}

	timeout, err := s.timeouts.Get(ctx, guildID, targetID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if !timeout.Active(s.now()) {
		return NotFound("NOT_FOUND", "member is not timed out")
	}

	if err := s.timeouts.Delete(ctx, guildID, targetID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, actorID, AuditTimeoutRemove, &targetID, "member", nil)
	return nil
}

// GetTimeout returns a member's active timeout, or nil when none is in
// effect. Expired rows are treated as absent without being deleted.
func (s *ModerationService) GetTimeout(ctx context.Context, guildID, requesterID, targetID int64) (*models.Timeout, error) {
	_, actor, err := s.checker.ActorContext(ctx, guildID, requesterID)
	if err != nil {
		return nil, err
	}
	if !actor.IsMember && !actor.Snapshot.IsOwner {
		return nil, Forbidden("FORBIDDEN", "you are not a member of this guild")
	}

	timeout, err := s.timeouts.Get(ctx, guildID, targetID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if !timeout.Active(s.now()) {
		return nil, nil
	}
	return timeout, nil
}

// ListTimeouts returns the guild's active timeouts. Requires
// MODERATE_MEMBERS; expired rows are filtered out.
func (s *ModerationService) ListTimeouts(ctx context.Context, guildID, requesterID int64) ([]models.Timeout, error) {
	_, actor, err := s.checker.ActorContext(ctx, guildID, requesterID)
	if err != nil {
		return nil, err
	}
	if !actor.Snapshot.Can(permissions.PermModerateMembers) {
		return nil, Forbidden("MISSING_PERMISSIONS", "requires the MODERATE_MEMBERS permission")
	}

	all, err := s.timeouts.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	now := s.now()
	active := make([]models.Timeout, 0, len(all))
	for i := range all {
		if all[i].Active(now) {
			active = append(active, all[i])
		}
	}
	return active, nil
}

// IsTimedOut reports whether the user currently has an active timeout in
// the guild. Used by the message path to block sends.
func (s *ModerationService) IsTimedOut(ctx context.Context, guildID, userID int64) (bool, error) {
	timeout, err := s.timeouts.Get(ctx, guildID, userID)
	if err != nil {
		return false, Internal("INTERNAL", "internal server error")
	}
	return timeout.Active(s.now()), nil
}
