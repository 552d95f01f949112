package database

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type timeoutRepo struct {
	pool *pgxpool.Pool
}

func NewTimeoutRepository(pool *pgxpool.Pool) TimeoutRepository {
	return &timeoutRepo{pool: pool}
}

// Upsert writes the timeout, replacing any existing row for the same
// (guild, user). Replacement, not extension, is the intended semantics.
func (r *timeoutRepo) Upsert(ctx context.Context, t *models.Timeout) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO timeouts (guild_id, user_id, until, moderator_id, reason)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (guild_id, user_id)
		 DO UPDATE SET until = $3, moderator_id = $4, reason = $5`,
		t.GuildID, t.UserID, t.Until, t.ModeratorID, t.Reason,
	)
	return err
}

func (r *timeoutRepo) Get(ctx context.Context, guildID, userID int64) (*models.Timeout, error) {
	t := &models.Timeout{}
	err := r.pool.QueryRow(ctx,
		`SELECT guild_id, user_id, until, moderator_id, reason
		 FROM timeouts WHERE guild_id = $1 AND user_id = $2`, guildID, userID,
	).Scan(&t.GuildID, &t.UserID, &t.Until, &t.ModeratorID, &t.Reason)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *timeoutRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.Timeout, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT guild_id, user_id, until, moderator_id, reason
		 FROM timeouts WHERE guild_id = $1
		 ORDER BY until DESC`, guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timeouts []models.Timeout
	for rows.Next() {
		var t models.Timeout
		if err := rows.Scan(&t.GuildID, &t.UserID, &t.Until, &t.ModeratorID, &t.Reason); err != nil {
			return nil, err
		}
		timeouts = append(timeouts, t)
	}
	return timeouts, rows.Err()
}

func (r *timeoutRepo) Delete(ctx context.Context, guildID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM timeouts WHERE guild_id = $1 AND user_id = $2`, guildID, userID,
	)
	return err
}
