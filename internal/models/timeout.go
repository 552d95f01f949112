package models

import "time"

// Timeout is a time-bounded mute on a guild member. At most one timeout
// exists per (guild, user); applying a new one replaces the old record.
type Timeout struct {
	GuildID     int64     `json:"guild_id,string"`
	UserID      int64     `json:"user_id,string"`
	Until       time.Time `json:"until"`
	ModeratorID int64     `json:"moderator_id,string"`
	Reason      *string   `json:"reason,omitempty"`
}

// Active reports whether the timeout is in effect at the given instant.
// Expiry is evaluated lazily; an expired row may still exist in storage.
func (t *Timeout) Active(now time.Time) bool {
	return t != nil && now.Before(t.Until)
}
