package automod

import (
	"encoding/json"
	"strings"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
)

// Trigger types form a closed enumeration; unknown values are rejected at
// validation time. Each trigger kind has its own typed config shape.
const (
	TriggerKeyword     = "keyword"
	TriggerMentionSpam = "mention_spam"
	TriggerRateSpam    = "rate_spam"
)

// KeywordConfig matches messages containing any of a list of keywords.
type KeywordConfig struct {
	Keywords      []string `json:"keywords"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
}

// MentionSpamConfig limits how many user mentions a single message may carry.
type MentionSpamConfig struct {
	MaxMentions int `json:"max_mentions"`
}

// RateSpamConfig limits how many messages a member may send per interval.
type RateSpamConfig struct {
	MaxMessages     int `json:"max_messages"`
	IntervalSeconds int `json:"interval_seconds"`
}

// Action types recognized in a rule's action list.
const (
	ActionDeleteMessage = "delete_message"
	ActionTimeoutMember = "timeout_member"
	ActionSendAlert     = "send_alert"
)

// Action is one entry of a rule's ordered action list. Type selects which
// of the optional parameter fields are required.
type Action struct {
	Type            string `json:"type"`
	DurationSeconds int    `json:"duration_seconds,omitempty"` // timeout_member
	AlertChannelID  int64  `json:"alert_channel_id,string,omitempty"` // send_alert
}

// DecodeActions parses a stored action list into its typed form.
func DecodeActions(raw json.RawMessage) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal(raw, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// mention is the prefix of a user mention in message content, e.g. <@123>.
const mention = "<@"

// Triggered reports whether message content trips a content-based rule.
// Rate-based rules carry no content predicate; the caller evaluates them
// against its per-member rate counters, so they always return false here.
func Triggered(rule *models.AutomodRule, content string) bool {
	if !rule.Enabled {
		return false
	}

	switch rule.TriggerType {
	case TriggerKeyword:
		var cfg KeywordConfig
		if err := json.Unmarshal(rule.Config, &cfg); err != nil {
			return false
		}
		haystack := content
		if !cfg.CaseSensitive {
			haystack = strings.ToLower(content)
		}
		for _, kw := range cfg.Keywords {
			if !cfg.CaseSensitive {
				kw = strings.ToLower(kw)
			}
			if kw != "" && strings.Contains(haystack, kw) {
				return true
			}
		}
		return false

	case TriggerMentionSpam:
		var cfg MentionSpamConfig
		if err := json.Unmarshal(rule.Config, &cfg); err != nil {
			return false
		}
		return strings.Count(content, mention) > cfg.MaxMentions
	}

	return false
}
