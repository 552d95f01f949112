package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/automod"
	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/moderation"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

// AutomodService manages a guild's automod rules. Rule mutation is
// reserved to the guild owner; any member may read rules.
type AutomodService struct {
	rules     database.AutomodRuleRepository
	checker   *PermissionChecker
	recorder  *AuditRecorder
	snowflake *snowflake.Generator
}

func NewAutomodService(
	rules database.AutomodRuleRepository,
	checker *PermissionChecker,
	recorder *AuditRecorder,
	gen *snowflake.Generator,
) *AutomodService {
	return &AutomodService{
		rules:     rules,
		checker:   checker,
		recorder:  recorder,
		snowflake: gen,
	}
}

// CreateRuleInput carries a new rule's definition. Config and Actions are
// raw JSON validated against the trigger type before storage.
type CreateRuleInput struct {
	Name        string          `json:"name"`
	TriggerType string          `json:"trigger_type"`
	Config      json.RawMessage `json:"config"`
	Actions     json.RawMessage `json:"actions"`
	Enabled     *bool           `json:"enabled"`
}

// UpdateRuleInput is a partial patch. Nil fields keep their stored value;
// validation always runs over the merged result, so a patch cannot leave a
// rule whose config no longer matches its trigger type.
type UpdateRuleInput struct {
	Name        *string         `json:"name"`
	TriggerType *string         `json:"trigger_type"`
	Config      json.RawMessage `json:"config"`
	Actions     json.RawMessage `json:"actions"`
	Enabled     *bool           `json:"enabled"`
}

func validationError(err error) error {
	var verr *automod.ValidationError
	if errors.As(err, &verr) {
		return BadRequest("INVALID_RULE", verr.Message)
	}
	return BadRequest("INVALID_RULE", err.Error())
}

func (s *AutomodService) requireManage(ctx context.Context, guildID, userID int64) error {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return err
	}
	return verdictError(moderation.Authorize(moderation.ActionAutomodManage, actor, nil))
}

// CreateRule validates and stores a new rule.
func (s *AutomodService) CreateRule(ctx context.Context, guildID, userID int64, input CreateRuleInput) (*models.AutomodRule, error) {
	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, BadRequest("INVALID_RULE", "rule name is required")
	}
	if err := automod.Validate(input.TriggerType, input.Config, input.Actions); err != nil {
		return nil, validationError(err)
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	now := time.Now()
	rule := &models.AutomodRule{
		ID:          s.snowflake.Generate().Int64(),
		GuildID:     guildID,
		Name:        input.Name,
		TriggerType: input.TriggerType,
		Config:      input.Config,
		Actions:     input.Actions,
		Enabled:     enabled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, userID, AuditAutomodCreate, &rule.ID, "automod_rule", map[string]any{"name": rule.Name})
	return rule, nil
}

// UpdateRule applies a partial patch to an existing rule. The stored rule
// and the patch are merged first and the merged rule is validated whole.
func (s *AutomodService) UpdateRule(ctx context.Context, guildID, userID, ruleID int64, input UpdateRuleInput) (*models.AutomodRule, error) {
	// Existence first: rules are readable by any member, so a missing rule
	// is NotFound even for callers who could not manage it.
	rule, err := s.rules.GetByID(ctx, guildID, ruleID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if rule == nil {
		return nil, NotFound("NOT_FOUND", "automod rule not found")
	}

	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, BadRequest("INVALID_RULE", "rule name is required")
		}
		rule.Name = *input.Name
	}
	if input.TriggerType != nil {
		rule.TriggerType = *input.TriggerType
	}
	if input.Config != nil {
		rule.Config = input.Config
	}
	if input.Actions != nil {
		rule.Actions = input.Actions
	}
	if input.Enabled != nil {
		rule.Enabled = *input.Enabled
	}

	if err := automod.Validate(rule.TriggerType, rule.Config, rule.Actions); err != nil {
		return nil, validationError(err)
	}

	rule.UpdatedAt = time.Now()
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, userID, AuditAutomodUpdate, &rule.ID, "automod_rule", map[string]any{"name": rule.Name})
	return rule, nil
}

// DeleteRule removes a rule.
func (s *AutomodService) DeleteRule(ctx context.Context, guildID, userID, ruleID int64) error {
	rule, err := s.rules.GetByID(ctx, guildID, ruleID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if rule == nil {
		return NotFound("NOT_FOUND", "automod rule not found")
	}

	if err := s.requireManage(ctx, guildID, userID); err != nil {
		return err
	}

	if err := s.rules.Delete(ctx, guildID, ruleID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}

	s.recorder.Record(guildID, userID, AuditAutomodDelete, &ruleID, "automod_rule", map[string]any{"name": rule.Name})
	return nil
}

// GetRule returns one rule. Any member of the guild may read rules.
func (s *AutomodService) GetRule(ctx context.Context, guildID, userID, ruleID int64) (*models.AutomodRule, error) {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if err := verdictError(moderation.Authorize(moderation.ActionAutomodRead, actor, nil)); err != nil {
		return nil, err
	}

	rule, err := s.rules.GetByID(ctx, guildID, ruleID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if rule == nil {
		return nil, NotFound("NOT_FOUND", "automod rule not found")
	}
	return rule, nil
}

// ListRules returns all of a guild's rules. Any member may read.
func (s *AutomodService) ListRules(ctx context.Context, guildID, userID int64) ([]models.AutomodRule, error) {
	_, actor, err := s.checker.ActorContext(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if err := verdictError(moderation.Authorize(moderation.ActionAutomodRead, actor, nil)); err != nil {
		return nil, err
	}

	rules, err := s.rules.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	return rules, nil
}
