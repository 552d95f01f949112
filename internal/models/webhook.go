package models

import "time"

type Webhook struct {
	ID        int64     `json:"id,string"`
	GuildID   int64     `json:"guild_id,string"`
	ChannelID int64     `json:"channel_id,string"`
	Name      string    `json:"name"`
	Token     string    `json:"token,omitempty"`
	CreatedBy int64     `json:"created_by,string"`
	CreatedAt time.Time `json:"created_at"`
}
