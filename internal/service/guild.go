package service

import (
	"context"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

// GuildService handles guild lifecycle.
type GuildService struct {
	guilds    database.GuildRepository
	members   database.MemberRepository
	roles     database.RoleRepository
	snowflake *snowflake.Generator
	checker   *PermissionChecker
}

// NewGuildService creates a GuildService.
func NewGuildService(
	guilds database.GuildRepository,
	members database.MemberRepository,
	roles database.RoleRepository,
	sf *snowflake.Generator,
	checker *PermissionChecker,
) *GuildService {
	return &GuildService{
		guilds:    guilds,
		members:   members,
		roles:     roles,
		snowflake: sf,
		checker:   checker,
	}
}

// CreateGuild creates a guild with its default role and enrolls the owner.
func (s *GuildService) CreateGuild(ctx context.Context, userID int64, name string) (*models.Guild, error) {
	if len(name) < 2 || len(name) > 100 {
		return nil, BadRequest("INVALID_NAME", "guild name must be 2-100 characters")
	}

	now := time.Now()

	guild := &models.Guild{
		ID:        s.snowflake.Generate().Int64(),
		Name:      name,
		OwnerID:   userID,
		CreatedAt: now,
	}
	if err := s.guilds.Create(ctx, guild); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	everyoneRole := &models.Role{
		ID:          s.snowflake.Generate().Int64(),
		GuildID:     guild.ID,
		Name:        "@everyone",
		Permissions: int64(permissions.DefaultEveryonePerms),
		Position:    0,
		IsDefault:   true,
	}
	if err := s.roles.Create(ctx, everyoneRole); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	member := &models.Member{
		GuildID:  guild.ID,
		UserID:   userID,
		JoinedAt: now,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if err := s.members.AddRole(ctx, guild.ID, userID, everyoneRole.ID); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	return guild, nil
}

// GetGuild returns a guild. Caller must be a member.
func (s *GuildService) GetGuild(ctx context.Context, guildID, userID int64) (*models.Guild, error) {
	guild, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsMember && !actor.Snapshot.IsOwner {
		return nil, NotFound("NOT_FOUND", "guild not found")
	}
	return guild, nil
}

// UpdateGuild renames a guild. Requires MANAGE_GUILD.
func (s *GuildService) UpdateGuild(ctx context.Context, guildID, userID int64, name string) (*models.Guild, error) {
	if len(name) < 2 || len(name) > 100 {
		return nil, BadRequest("INVALID_NAME", "guild name must be 2-100 characters")
	}
	if err := s.checker.RequireGuildPermission(ctx, guildID, userID, permissions.PermManageGuild); err != nil {
		return nil, err
	}

	guild, err := s.guilds.GetByID(ctx, guildID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if guild == nil {
		return nil, NotFound("NOT_FOUND", "guild not found")
	}

	guild.Name = name
	if err := s.guilds.Update(ctx, guild); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return guild, nil
}

// DeleteGuild removes a guild entirely. Only the owner may.
func (s *GuildService) DeleteGuild(ctx context.Context, guildID, userID int64) error {
	guild, err := s.guilds.GetByID(ctx, guildID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if guild == nil {
		return NotFound("NOT_FOUND", "guild not found")
	}
	if guild.OwnerID != userID {
		return Forbidden("OWNER_ONLY", "only the guild owner can delete the guild")
	}

	if err := s.guilds.Delete(ctx, guildID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	return nil
}

// ListMyGuilds returns the guilds the user belongs to.
func (s *GuildService) ListMyGuilds(ctx context.Context, userID int64) ([]models.Guild, error) {
	guilds, err := s.guilds.GetByUserID(ctx, userID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if guilds == nil {
		guilds = []models.Guild{}
	}
	return guilds, nil
}
