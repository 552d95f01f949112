package models

import (
	"encoding/json"
	"time"
)

// AuditEntry records a privileged action after it has been authorized and
// applied. Audit writes are fire-and-forget; a failed append never affects
// the action it describes.
type AuditEntry struct {
	ID         int64           `json:"id,string"`
	GuildID    int64           `json:"guild_id,string"`
	ActorID    int64           `json:"actor_id,string"`
	Action     string          `json:"action"`
	TargetID   *int64          `json:"target_id,string,omitempty"`
	TargetType string          `json:"target_type"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
