package database

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepo{pool: pool}
}

func (r *auditRepo) Append(ctx context.Context, e *models.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_log (id, guild_id, actor_id, action, target_id, target_type, changes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.GuildID, e.ActorID, e.Action, e.TargetID, e.TargetType, e.Changes, e.CreatedAt,
	)
	return err
}

func (r *auditRepo) GetByGuildID(ctx context.Context, guildID int64, limit int) ([]models.AuditEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, guild_id, actor_id, action, target_id, target_type, changes, created_at
		 FROM audit_log WHERE guild_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, guildID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.GuildID, &e.ActorID, &e.Action, &e.TargetID, &e.TargetType, &e.Changes, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
