package service

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/moderation"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

// RoleService manages guild roles and their assignment to members.
type RoleService struct {
	roles     database.RoleRepository
	members   database.MemberRepository
	checker   *PermissionChecker
	recorder  *AuditRecorder
	snowflake *snowflake.Generator
}

func NewRoleService(
	roles database.RoleRepository,
	members database.MemberRepository,
	checker *PermissionChecker,
	recorder *AuditRecorder,
	gen *snowflake.Generator,
) *RoleService {
	return &RoleService{
		roles:     roles,
		members:   members,
		checker:   checker,
		recorder:  recorder,
		snowflake: gen,
	}
}

// CreateRoleInput carries a new role's attributes.
type CreateRoleInput struct {
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Permissions int64  `json:"permissions,string"`
	Position    int    `json:"position"`
	Hoisted     bool   `json:"hoisted"`
	Mentionable bool   `json:"mentionable"`
}

// UpdateRoleInput is a partial patch; nil fields keep their stored value.
type UpdateRoleInput struct {
	Name        *string `json:"name"`
	Color       *int    `json:"color"`
	Permissions *int64  `json:"permissions,string"`
	Position    *int    `json:"position"`
	Hoisted     *bool   `json:"hoisted"`
	Mentionable *bool   `json:"mentionable"`
}

// requireRoleAuthority checks MANAGE_ROLES plus standing over the role
// itself: a non-owner can only touch roles strictly below their own
// highest role.
func (s *RoleService) requireRoleAuthority(ctx context.Context, guildID, userID int64, rolePosition int) error {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if !actor.Snapshot.Can(permissions.PermManageRoles) {
		return Forbidden("MISSING_PERMISSIONS", "requires the MANAGE_ROLES permission")
	}
	if actor.Snapshot.IsOwner {
		return nil
	}
	if !permissions.Outranks(actor.HighestPosition, rolePosition) {
		return RoleHierarchyError("your highest role must be above the role you are managing")
	}
	return nil
}

// CreateRole adds a role to the guild.
func (s *RoleService) CreateRole(ctx context.Context, guildID, userID int64, input CreateRoleInput) (*models.Role, error) {
	if input.Name == "" {
		return nil, BadRequest("INVALID_ROLE", "role name is required")
	}
	if err := s.requireRoleAuthority(ctx, guildID, userID, input.Position); err != nil {
		return nil, err
	}

	role := &models.Role{
		ID:          s.snowflake.Generate().Int64(),
		GuildID:     guildID,
		Name:        input.Name,
		Color:       input.Color,
		Permissions: input.Permissions,
		Position:    input.Position,
		Hoisted:     input.Hoisted,
		Mentionable: input.Mentionable,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return role, nil
}

// UpdateRole applies a partial patch to a role.
func (s *RoleService) UpdateRole(ctx context.Context, guildID, userID, roleID int64, input UpdateRoleInput) (*models.Role, error) {
	role, err := s.guildRole(ctx, guildID, roleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRoleAuthority(ctx, guildID, userID, role.Position); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, BadRequest("INVALID_ROLE", "role name is required")
		}
		role.Name = *input.Name
	}
	if input.Color != nil {
		role.Color = *input.Color
	}
	if input.Permissions != nil {
		role.Permissions = *input.Permissions
	}
	if input.Position != nil {
		if role.IsDefault {
			return nil, BadRequest("INVALID_ROLE", "the default role cannot be repositioned")
		}
		role.Position = *input.Position
	}
	if input.Hoisted != nil {
		role.Hoisted = *input.Hoisted
	}
	if input.Mentionable != nil {
		role.Mentionable = *input.Mentionable
	}

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return role, nil
}

// DeleteRole removes a role. The guild's default role cannot be deleted.
func (s *RoleService) DeleteRole(ctx context.Context, guildID, userID, roleID int64) error {
	role, err := s.guildRole(ctx, guildID, roleID)
	if err != nil {
		return err
	}
	if role.IsDefault {
		return BadRequest("INVALID_ROLE", "the default role cannot be deleted")
	}
	if err := s.requireRoleAuthority(ctx, guildID, userID, role.Position); err != nil {
		return err
	}

	if err := s.roles.Delete(ctx, roleID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	return nil
}

// ListRoles returns the guild's roles. Any member may read them.
func (s *RoleService) ListRoles(ctx context.Context, guildID, userID int64) ([]models.Role, error) {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsMember && !actor.Snapshot.IsOwner {
		return nil, Forbidden("FORBIDDEN", "you are not a member of this guild")
	}

	roles, err := s.roles.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return roles, nil
}

// AssignRole grants a role to a member. Beyond MANAGE_ROLES, a non-owner
// must outrank the role being granted.
func (s *RoleService) AssignRole(ctx context.Context, guildID, actorID, targetID, roleID int64) error {
	return s.changeMemberRole(ctx, guildID, actorID, targetID, roleID, moderation.ActionRoleAssign)
}

// RemoveRole revokes a role from a member, under the same authority rules
// as AssignRole.
func (s *RoleService) RemoveRole(ctx context.Context, guildID, actorID, targetID, roleID int64) error {
	return s.changeMemberRole(ctx, guildID, actorID, targetID, roleID, moderation.ActionRoleRemove)
}

func (s *RoleService) changeMemberRole(ctx context.Context, guildID, actorID, targetID, roleID int64, action moderation.Action) error {
	role, err := s.guildRole(ctx, guildID, roleID)
	if err != nil {
		return err
	}

	guild, actor, err := s.checker.ActorContext(ctx, guildID, actorID)
	if err != nil {
		return err
	}
	target, err := s.checker.TargetContext(ctx, guild, targetID)
	if err != nil {
		return err
	}
	if err := verdictError(moderation.Authorize(action, actor, target)); err != nil {
		return err
	}
	if !actor.Snapshot.IsOwner && !permissions.Outranks(actor.HighestPosition, role.Position) {
		return RoleHierarchyError("your highest role must be above the role you are granting or revoking")
	}

	var auditAction string
	switch action {
	case moderation.ActionRoleAssign:
		err = s.members.AddRole(ctx, guildID, targetID, roleID)
		auditAction = AuditRoleAssign
	case moderation.ActionRoleRemove:
		err = s.members.RemoveRole(ctx, guildID, targetID, roleID)
		auditAction = AuditRoleRemove
	}
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, actorID, auditAction, &targetID, "member", map[string]any{"role_id": roleID})
	return nil
}

func (s *RoleService) guildRole(ctx context.Context, guildID, roleID int64) (*models.Role, error) {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if role == nil || role.GuildID != guildID {
		return nil, NotFound("NOT_FOUND", "role not found")
	}
	return role, nil
}
