package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// AutomodHandler handles automod rule endpoints.
type AutomodHandler struct {
	service *service.AutomodService
	gateway gateway.Dispatcher
}

// NewAutomodHandler creates an AutomodHandler.
func NewAutomodHandler(svc *service.AutomodService, gw gateway.Dispatcher) *AutomodHandler {
	return &AutomodHandler{service: svc, gateway: gw}
}

func guildRuleParams(c echo.Context) (guildID, ruleID int64, err error) {
	guildID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	ruleID, err = strconv.ParseInt(c.Param("rule_id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
	}
	return guildID, ruleID, nil
}

// CreateRule handles POST /api/v1/guilds/:id/automod/rules.
func (h *AutomodHandler) CreateRule(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	var req service.CreateRuleInput
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	rule, err := h.service.CreateRule(c.Request().Context(), guildID, userID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventAutomodRuleCreate, rule)

	return c.JSON(http.StatusCreated, map[string]any{"data": rule})
}

// ListRules handles GET /api/v1/guilds/:id/automod/rules.
func (h *AutomodHandler) ListRules(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	rules, err := h.service.ListRules(c.Request().Context(), guildID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": rules})
}

// GetRule handles GET /api/v1/guilds/:id/automod/rules/:rule_id.
func (h *AutomodHandler) GetRule(c echo.Context) error {
	guildID, ruleID, perr := guildRuleParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	rule, err := h.service.GetRule(c.Request().Context(), guildID, userID, ruleID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": rule})
}

// UpdateRule handles PATCH /api/v1/guilds/:id/automod/rules/:rule_id.
func (h *AutomodHandler) UpdateRule(c echo.Context) error {
	guildID, ruleID, perr := guildRuleParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	var req service.UpdateRuleInput
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	rule, err := h.service.UpdateRule(c.Request().Context(), guildID, userID, ruleID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventAutomodRuleUpdate, rule)

	return c.JSON(http.StatusOK, map[string]any{"data": rule})
}

// DeleteRule handles DELETE /api/v1/guilds/:id/automod/rules/:rule_id.
func (h *AutomodHandler) DeleteRule(c echo.Context) error {
	guildID, ruleID, perr := guildRuleParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	if err := h.service.DeleteRule(c.Request().Context(), guildID, userID, ruleID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventAutomodRuleDelete, map[string]any{"id": ruleID})

	return c.NoContent(http.StatusNoContent)
}
