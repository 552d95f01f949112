package database

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type webhookRepo struct {
	pool *pgxpool.Pool
}

func NewWebhookRepository(pool *pgxpool.Pool) WebhookRepository {
	return &webhookRepo{pool: pool}
}

func (r *webhookRepo) Create(ctx context.Context, w *models.Webhook) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO webhooks (id, guild_id, channel_id, name, token, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.GuildID, w.ChannelID, w.Name, w.Token, w.CreatedBy, w.CreatedAt,
	)
	return err
}

func (r *webhookRepo) GetByID(ctx context.Context, id int64) (*models.Webhook, error) {
	w := &models.Webhook{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, guild_id, channel_id, name, token, created_by, created_at
		 FROM webhooks WHERE id = $1`, id,
	).Scan(&w.ID, &w.GuildID, &w.ChannelID, &w.Name, &w.Token, &w.CreatedBy, &w.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *webhookRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.Webhook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, guild_id, channel_id, name, token, created_by, created_at
		 FROM webhooks WHERE guild_id = $1
		 ORDER BY created_at`, guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var webhooks []models.Webhook
	for rows.Next() {
		var w models.Webhook
		if err := rows.Scan(&w.ID, &w.GuildID, &w.ChannelID, &w.Name, &w.Token, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, err
		}
		webhooks = append(webhooks, w)
	}
	return webhooks, rows.Err()
}

func (r *webhookRepo) Update(ctx context.Context, w *models.Webhook) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE webhooks SET name = $2, channel_id = $3 WHERE id = $1`,
		w.ID, w.Name, w.ChannelID,
	)
	return err
}

func (r *webhookRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	return err
}
