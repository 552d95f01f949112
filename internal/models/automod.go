package models

import (
	"encoding/json"
	"time"
)

// AutomodRule is a stored content-moderation rule. Config and Actions are
// kept as raw JSON in the database; the automod package owns their typed
// forms and validates them before any write.
type AutomodRule struct {
	ID          int64           `json:"id,string"`
	GuildID     int64           `json:"guild_id,string"`
	Name        string          `json:"name"`
	TriggerType string          `json:"trigger_type"`
	Config      json.RawMessage `json:"config"`
	Actions     json.RawMessage `json:"actions"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
