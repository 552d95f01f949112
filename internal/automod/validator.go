package automod

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValidationError describes why a proposed rule is malformed. It is the
// only error type Validate returns for bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks a proposed (triggerType, config, actions) tuple against
// the schema for that trigger kind. It is pure and is called both on rule
// creation and on every update that touches config or actions, using the
// merged (stored + patch) values so a partial update cannot persist an
// inconsistent rule.
func Validate(triggerType string, config, actions json.RawMessage) error {
	if err := validateConfig(triggerType, config); err != nil {
		return err
	}
	return validateActions(actions)
}

func validateConfig(triggerType string, config json.RawMessage) error {
	if !isJSONObject(config) {
		return invalid("config must be a JSON object")
	}

	switch triggerType {
	case TriggerKeyword:
		var cfg KeywordConfig
		if err := decodeStrict(config, &cfg); err != nil {
			return invalid("keyword config: %v", err)
		}
		if len(cfg.Keywords) == 0 {
			return invalid("keyword config requires a non-empty keyword list")
		}
		for i, kw := range cfg.Keywords {
			if kw == "" {
				return invalid("keyword config: keyword %d is empty", i)
			}
		}
		return nil

	case TriggerMentionSpam:
		var cfg MentionSpamConfig
		if err := decodeStrict(config, &cfg); err != nil {
			return invalid("mention_spam config: %v", err)
		}
		if cfg.MaxMentions <= 0 {
			return invalid("mention_spam config requires max_mentions > 0")
		}
		return nil

	case TriggerRateSpam:
		var cfg RateSpamConfig
		if err := decodeStrict(config, &cfg); err != nil {
			return invalid("rate_spam config: %v", err)
		}
		if cfg.MaxMessages <= 0 {
			return invalid("rate_spam config requires max_messages > 0")
		}
		if cfg.IntervalSeconds <= 0 {
			return invalid("rate_spam config requires interval_seconds > 0")
		}
		return nil
	}

	return invalid("unknown trigger type %q", triggerType)
}

func validateActions(raw json.RawMessage) error {
	if !isJSONArray(raw) {
		return invalid("actions must be a JSON array")
	}

	actions, err := DecodeActions(raw)
	if err != nil {
		return invalid("actions: %v", err)
	}
	if len(actions) == 0 {
		return invalid("actions must not be empty")
	}

	for i, a := range actions {
		switch a.Type {
		case ActionDeleteMessage:
			// No parameters.
		case ActionTimeoutMember:
			if a.DurationSeconds <= 0 {
				return invalid("action %d: timeout_member requires duration_seconds > 0", i)
			}
		case ActionSendAlert:
			if a.AlertChannelID == 0 {
				return invalid("action %d: send_alert requires alert_channel_id", i)
			}
		default:
			return invalid("action %d: unknown action type %q", i, a.Type)
		}
	}
	return nil
}

func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isJSONObject(raw json.RawMessage) bool {
	return firstByte(raw) == '{'
}

func isJSONArray(raw json.RawMessage) bool {
	return firstByte(raw) == '['
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
