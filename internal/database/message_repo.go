package database

import (
	"context"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepo{pool: pool}
}

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO messages (id, channel_id, guild_id, author_id, content, pinned, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.ChannelID, msg.GuildID, msg.AuthorID, msg.Content, msg.Pinned, msg.CreatedAt,
	)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	msg := &models.Message{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, channel_id, guild_id, author_id, content, pinned, created_at, edited_at
		 FROM messages WHERE id = $1`, id,
	).Scan(&msg.ID, &msg.ChannelID, &msg.GuildID, &msg.AuthorID, &msg.Content, &msg.Pinned, &msg.CreatedAt, &msg.EditedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *messageRepo) GetByChannelID(ctx context.Context, channelID int64, before *int64, limit int) ([]models.Message, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if before != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT id, channel_id, guild_id, author_id, content, pinned, created_at, edited_at
			 FROM messages WHERE channel_id = $1 AND id < $2
			 ORDER BY id DESC LIMIT $3`, channelID, *before, limit)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT id, channel_id, guild_id, author_id, content, pinned, created_at, edited_at
			 FROM messages WHERE channel_id = $1
			 ORDER BY id DESC LIMIT $2`, channelID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ChannelID, &msg.GuildID, &msg.AuthorID, &msg.Content, &msg.Pinned, &msg.CreatedAt, &msg.EditedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *messageRepo) SetPinned(ctx context.Context, id int64, pinned bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE messages SET pinned = $2 WHERE id = $1`, id, pinned)
	return err
}

func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}
