package database

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type automodRuleRepo struct {
	pool *pgxpool.Pool
}

func NewAutomodRuleRepository(pool *pgxpool.Pool) AutomodRuleRepository {
	return &automodRuleRepo{pool: pool}
}

func (r *automodRuleRepo) Create(ctx context.Context, rule *models.AutomodRule) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO automod_rules (id, guild_id, name, trigger_type, config, actions, enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rule.ID, rule.GuildID, rule.Name, rule.TriggerType, rule.Config, rule.Actions, rule.Enabled, rule.CreatedAt, rule.UpdatedAt,
	)
	return err
}

func (r *automodRuleRepo) GetByID(ctx context.Context, guildID, ruleID int64) (*models.AutomodRule, error) {
	rule := &models.AutomodRule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, guild_id, name, trigger_type, config, actions, enabled, created_at, updated_at
		 FROM automod_rules WHERE guild_id = $1 AND id = $2`, guildID, ruleID,
	).Scan(&rule.ID, &rule.GuildID, &rule.Name, &rule.TriggerType, &rule.Config, &rule.Actions, &rule.Enabled, &rule.CreatedAt, &rule.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *automodRuleRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.AutomodRule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, guild_id, name, trigger_type, config, actions, enabled, created_at, updated_at
		 FROM automod_rules WHERE guild_id = $1
		 ORDER BY created_at`, guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.AutomodRule
	for rows.Next() {
		var rule models.AutomodRule
		if err := rows.Scan(&rule.ID, &rule.GuildID, &rule.Name, &rule.TriggerType, &rule.Config, &rule.Actions, &rule.Enabled, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *automodRuleRepo) Update(ctx context.Context, rule *models.AutomodRule) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE automod_rules
		 SET name = $3, trigger_type = $4, config = $5, actions = $6, enabled = $7, updated_at = $8
		 WHERE guild_id = $1 AND id = $2`,
		rule.GuildID, rule.ID, rule.Name, rule.TriggerType, rule.Config, rule.Actions, rule.Enabled, rule.UpdatedAt,
	)
	return err
}

func (r *automodRuleRepo) Delete(ctx context.Context, guildID, ruleID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM automod_rules WHERE guild_id = $1 AND id = $2`, guildID, ruleID,
	)
	return err
}
