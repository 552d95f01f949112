package service

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/moderation"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
)

// PermissionChecker builds the per-request authority snapshots the
// moderation authorizer decides over, and offers direct permission gates
// for simple cases.
type PermissionChecker struct {
	guilds  database.GuildRepository
	members database.MemberRepository
	roles   database.RoleRepository
}

// NewPermissionChecker creates a PermissionChecker.
func NewPermissionChecker(
	guilds database.GuildRepository,
	members database.MemberRepository,
	roles database.RoleRepository,
) *PermissionChecker {
	return &PermissionChecker{
		guilds:  guilds,
		members: members,
		roles:   roles,
	}
}

// ActorContext loads the guild and resolves the acting user's authority in
// it. A user with no membership gets a zero-permission actor, never an
// error; only a missing guild is NotFound.
func (p *PermissionChecker) ActorContext(ctx context.Context, guildID, userID int64) (*models.Guild, moderation.Actor, error) {
	actor := moderation.Actor{UserID: userID}

	guild, err := p.guilds.GetByID(ctx, guildID)
	if err != nil {
		return nil, actor, Internal("INTERNAL", "internal server error")
	}
	if guild == nil {
		return nil, actor, NotFound("NOT_FOUND", "guild not found")
	}

	member, err := p.members.GetByGuildAndUser(ctx, guildID, userID)
	if err != nil {
		return nil, actor, Internal("INTERNAL", "internal server error")
	}
	actor.IsMember = member != nil

	roles, err := p.roles.GetByMember(ctx, guildID, userID)
	if err != nil {
		return nil, actor, Internal("INTERNAL", "internal server error")
	}

	actor.Snapshot = permissions.Resolve(guild.OwnerID, userID, roles)
	actor.HighestPosition = permissions.HighestPosition(roles)
	return guild, actor, nil
}

// TargetContext loads the target member's standing for hierarchy-sensitive
// actions. A target who is not a member of the guild is NotFound.
func (p *PermissionChecker) TargetContext(ctx context.Context, guild *models.Guild, userID int64) (*moderation.Target, error) {
	member, err := p.members.GetByGuildAndUser(ctx, guild.ID, userID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if member == nil {
		return nil, NotFound("NOT_FOUND", "member not found")
	}

	roles, err := p.roles.GetByMember(ctx, guild.ID, userID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	return &moderation.Target{
		UserID:          userID,
		IsOwner:         guild.OwnerID == userID,
		HighestPosition: permissions.HighestPosition(roles),
	}, nil
}

// RequireGuildPermission checks that the user holds the given permission in
// the guild. Owners and administrators bypass the per-flag check.
func (p *PermissionChecker) RequireGuildPermission(ctx context.Context, guildID, userID int64, perm permissions.Permission) error {
	_, actor, err := p.ActorContext(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if !actor.IsMember && !actor.Snapshot.IsOwner {
		return Forbidden("FORBIDDEN", "you are not a member of this guild")
	}
	if !actor.Snapshot.Can(perm) {
		return Forbidden("MISSING_PERMISSIONS", "you do not have the "+permissions.Name(perm)+" permission")
	}
	return nil
}

// IsGuildOwner returns true if the user is the owner of the guild.
func (p *PermissionChecker) IsGuildOwner(ctx context.Context, guildID, userID int64) (bool, error) {
	guild, err := p.guilds.GetByID(ctx, guildID)
	if err != nil {
		return false, Internal("INTERNAL", "internal server error")
	}
	if guild == nil {
		return false, nil
	}
	return guild.OwnerID == userID, nil
}

// HighestRolePosition returns the highest position among the user's roles.
func (p *PermissionChecker) HighestRolePosition(ctx context.Context, guildID, userID int64) (int, error) {
	memberRoles, err := p.roles.GetByMember(ctx, guildID, userID)
	if err != nil {
		return 0, Internal("INTERNAL", "internal server error")
	}
	return permissions.HighestPosition(memberRoles), nil
}

// verdictError translates a denied authorization verdict into the service
// error the handlers map onto HTTP. Allowed verdicts return nil.
func verdictError(v moderation.Verdict) error {
	if v.Allowed {
		return nil
	}
	if v.Code == "ROLE_HIERARCHY" {
		return RoleHierarchyError(v.Message)
	}
	return Forbidden(v.Code, v.Message)
}
