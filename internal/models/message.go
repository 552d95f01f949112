package models

import "time"

type Message struct {
	ID        int64      `json:"id,string"`
	ChannelID int64      `json:"channel_id,string"`
	GuildID   int64      `json:"guild_id,string"`
	AuthorID  int64      `json:"author_id,string"`
	Content   string     `json:"content"`
	Pinned    bool       `json:"pinned"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}
