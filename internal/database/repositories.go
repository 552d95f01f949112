package database

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type GuildRepository interface {
	Create(ctx context.Context, guild *models.Guild) error
	GetByID(ctx context.Context, id int64) (*models.Guild, error)
	Update(ctx context.Context, guild *models.Guild) error
	Delete(ctx context.Context, id int64) error
	GetByUserID(ctx context.Context, userID int64) ([]models.Guild, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	GetByGuildID(ctx context.Context, guildID int64) ([]models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id int64) error
	GetByMember(ctx context.Context, guildID, userID int64) ([]models.Role, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByGuildAndUser(ctx context.Context, guildID, userID int64) (*models.Member, error)
	GetByGuildID(ctx context.Context, guildID int64, limit, offset int) ([]models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, guildID, userID int64) error
	AddRole(ctx context.Context, guildID, userID, roleID int64) error
	RemoveRole(ctx context.Context, guildID, userID, roleID int64) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	GetByChannelID(ctx context.Context, channelID int64, before *int64, limit int) ([]models.Message, error)
	SetPinned(ctx context.Context, id int64, pinned bool) error
	Delete(ctx context.Context, id int64) error
}

// TimeoutRepository stores at most one timeout per (guild, user). Upsert
// replaces any existing row; Delete of a missing row is not an error.
type TimeoutRepository interface {
	Upsert(ctx context.Context, timeout *models.Timeout) error
	Get(ctx context.Context, guildID, userID int64) (*models.Timeout, error)
	GetByGuildID(ctx context.Context, guildID int64) ([]models.Timeout, error)
	Delete(ctx context.Context, guildID, userID int64) error
}

type AutomodRuleRepository interface {
	Create(ctx context.Context, rule *models.AutomodRule) error
	GetByID(ctx context.Context, guildID, ruleID int64) (*models.AutomodRule, error)
	GetByGuildID(ctx context.Context, guildID int64) ([]models.AutomodRule, error)
	Update(ctx context.Context, rule *models.AutomodRule) error
	Delete(ctx context.Context, guildID, ruleID int64) error
}

type WebhookRepository interface {
	Create(ctx context.Context, webhook *models.Webhook) error
	GetByID(ctx context.Context, id int64) (*models.Webhook, error)
	GetByGuildID(ctx context.Context, guildID int64) ([]models.Webhook, error)
	Update(ctx context.Context, webhook *models.Webhook) error
	Delete(ctx context.Context, id int64) error
}

// AuditRepository is an append-mostly log of privileged actions.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	GetByGuildID(ctx context.Context, guildID int64, limit int) ([]models.AuditEntry, error)
}
