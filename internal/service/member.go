package service

import (
	"context"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
)

// MemberService handles membership reads, joining, and leaving. Removal by
// a moderator lives in ModerationService.
type MemberService struct {
	members database.MemberRepository
	guilds  database.GuildRepository
	roles   database.RoleRepository
}

// NewMemberService creates a MemberService.
func NewMemberService(
	members database.MemberRepository,
	guilds database.GuildRepository,
	roles database.RoleRepository,
) *MemberService {
	return &MemberService{
		members: members,
		guilds:  guilds,
		roles:   roles,
	}
}

// JoinGuild enrolls a user in a guild and grants the default role.
func (s *MemberService) JoinGuild(ctx context.Context, guildID, userID int64) (*models.Member, error) {
	guild, err := s.guilds.GetByID(ctx, guildID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if guild == nil {
		return nil, NotFound("NOT_FOUND", "guild not found")
	}

	existing, err := s.members.GetByGuildAndUser(ctx, guildID, userID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if existing != nil {
		return nil, Conflict("ALREADY_MEMBER", "you are already a member of this guild")
	}

	member := &models.Member{
		GuildID:  guildID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	roles, err := s.roles.GetByGuildID(ctx, guildID)
	if err == nil {
		for _, role := range roles {
			if role.IsDefault {
				_ = s.members.AddRole(ctx, guildID, userID, role.ID)
				break
			}
		}
	}
	return member, nil
}

// ListMembers returns members of a guild. Caller must be a member.
func (s *MemberService) ListMembers(ctx context.Context, guildID, userID int64, limit, offset int) ([]models.Member, error) {
	caller, err := s.members.GetByGuildAndUser(ctx, guildID, userID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if caller == nil {
		return nil, NotFound("NOT_FOUND", "guild not found")
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	members, err := s.members.GetByGuildID(ctx, guildID, limit, offset)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

// GetMember returns a specific member. Caller must be a member.
func (s *MemberService) GetMember(ctx context.Context, guildID, callerID, targetUserID int64) (*models.Member, error) {
	caller, err := s.members.GetByGuildAndUser(ctx, guildID, callerID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if caller == nil {
		return nil, NotFound("NOT_FOUND", "guild not found")
	}

	member, err := s.members.GetByGuildAndUser(ctx, guildID, targetUserID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if member == nil {
		return nil, NotFound("NOT_FOUND", "member not found")
	}
	return member, nil
}

// LeaveGuild removes the caller from the guild. Owners cannot leave their
// own guild; they delete it instead.
func (s *MemberService) LeaveGuild(ctx context.Context, guildID, userID int64) error {
	guild, err := s.guilds.GetByID(ctx, guildID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if guild == nil {
		return NotFound("NOT_FOUND", "guild not found")
	}
	if guild.OwnerID == userID {
		return BadRequest("OWNER_CANNOT_LEAVE", "transfer or delete the guild instead")
	}

	member, err := s.members.GetByGuildAndUser(ctx, guildID, userID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if member == nil {
		return NotFound("NOT_FOUND", "you are not a member of this guild")
	}

	if err := s.members.Delete(ctx, guildID, userID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	return nil
}
