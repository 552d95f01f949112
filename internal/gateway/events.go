package gateway

import (
	"encoding/json"
	"time"
)

// Op codes for gateway payloads.
const (
	OpDispatch       = 0
	OpHeartbeat      = 1
	OpIdentify       = 2
	OpPresenceUpdate = 3
	OpResume         = 6
	OpReconnect      = 7
	OpHello          = 10
	OpHeartbeatAck   = 11
)

// Event names for DISPATCH payloads.
const (
	EventReady             = "READY"
	EventMessageCreate     = "MESSAGE_CREATE"
	EventMessageDelete     = "MESSAGE_DELETE"
	EventMessagePinUpdate  = "MESSAGE_PIN_UPDATE"
	EventGuildCreate       = "GUILD_CREATE"
	EventGuildUpdate       = "GUILD_UPDATE"
	EventGuildDelete       = "GUILD_DELETE"
	EventGuildMemberAdd    = "GUILD_MEMBER_ADD"
	EventGuildMemberRemove = "GUILD_MEMBER_REMOVE"
	EventGuildMemberUpdate = "GUILD_MEMBER_UPDATE"
	EventGuildRoleCreate   = "GUILD_ROLE_CREATE"
	EventGuildRoleUpdate   = "GUILD_ROLE_UPDATE"
	EventGuildRoleDelete   = "GUILD_ROLE_DELETE"
	EventTimeoutAdd        = "GUILD_TIMEOUT_ADD"
	EventTimeoutRemove     = "GUILD_TIMEOUT_REMOVE"
	EventAutomodRuleCreate = "AUTOMOD_RULE_CREATE"
	EventAutomodRuleUpdate = "AUTOMOD_RULE_UPDATE"
	EventAutomodRuleDelete = "AUTOMOD_RULE_DELETE"
	EventWebhooksUpdate    = "WEBHOOKS_UPDATE"
	EventPresenceUpdate    = "PRESENCE_UPDATE"
)

// GatewayPayload is the envelope for all gateway messages.
type GatewayPayload struct {
	Op       int             `json:"op"`
	Data     json.RawMessage `json:"d,omitempty"`
	Sequence *int64          `json:"s,omitempty"`
	Event    *string         `json:"t,omitempty"`
}

// IdentifyData is sent by the client in an Op 2 IDENTIFY.
type IdentifyData struct {
	Token string `json:"token"`
}

// ResumeData is sent by the client in an Op 6 RESUME.
type ResumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  int64  `json:"seq"`
}

// HelloData is sent by the server after WebSocket connect.
type HelloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"`
}

// ReadyData is sent by the server after successful IDENTIFY.
type ReadyData struct {
	SessionID string  `json:"session_id"`
	UserID    int64   `json:"user_id,string"`
	Guilds    []int64 `json:"guilds"`
}

// Event is a dispatch event ready to broadcast.
type Event struct {
	Name string
	Data any
}

// MemberRemoveData is the payload for GUILD_MEMBER_REMOVE events.
type MemberRemoveData struct {
	GuildID int64 `json:"guild_id,string"`
	UserID  int64 `json:"user_id,string"`
}

// TimeoutAddData is the payload for GUILD_TIMEOUT_ADD events.
type TimeoutAddData struct {
	GuildID int64     `json:"guild_id,string"`
	UserID  int64     `json:"user_id,string"`
	Until   time.Time `json:"until"`
}

// TimeoutRemoveData is the payload for GUILD_TIMEOUT_REMOVE events.
type TimeoutRemoveData struct {
	GuildID int64 `json:"guild_id,string"`
	UserID  int64 `json:"user_id,string"`
}

// MessagePinData is the payload for MESSAGE_PIN_UPDATE events.
type MessagePinData struct {
	GuildID   int64 `json:"guild_id,string"`
	ChannelID int64 `json:"channel_id,string"`
	MessageID int64 `json:"message_id,string"`
	Pinned    bool  `json:"pinned"`
}

// WebhooksUpdateData is the payload for WEBHOOKS_UPDATE events. Webhook
// contents are never broadcast; clients refetch over the API.
type WebhooksUpdateData struct {
	GuildID   int64 `json:"guild_id,string"`
	ChannelID int64 `json:"channel_id,string"`
}

// PresenceUpdateData is the payload for PRESENCE_UPDATE events.
type PresenceUpdateData struct {
	UserID int64  `json:"user_id,string"`
	Status string `json:"status"`
}

// ClientPresenceUpdate is sent by the client in an Op 3 PRESENCE_UPDATE.
type ClientPresenceUpdate struct {
	Status string `json:"status"`
}
