package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// ModerationHandler handles kicks and timeout endpoints.
type ModerationHandler struct {
	service *service.ModerationService
	gateway gateway.Dispatcher
}

// NewModerationHandler creates a ModerationHandler.
func NewModerationHandler(svc *service.ModerationService, gw gateway.Dispatcher) *ModerationHandler {
	return &ModerationHandler{service: svc, gateway: gw}
}

// guildUserParams parses the ":id" and ":user_id" route params.
func guildUserParams(c echo.Context) (guildID, userID int64, err error) {
	guildID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	userID, err = strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
	}
	return guildID, userID, nil
}

type kickRequest struct {
	Reason *string `json:"reason"`
}

// KickMember handles DELETE /api/v1/guilds/:id/members/:user_id.
func (h *ModerationHandler) KickMember(c echo.Context) error {
	guildID, targetID, perr := guildUserParams(c)
	if perr != nil {
		return perr
	}

	callerID := auth.GetUserID(c)

	var req kickRequest
	_ = c.Bind(&req) // body is optional

	if err := h.service.KickMember(c.Request().Context(), guildID, callerID, targetID, req.Reason); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.UnsubscribeFromGuild(targetID, guildID)
	h.gateway.DispatchToGuild(guildID, gateway.EventGuildMemberRemove, gateway.MemberRemoveData{
		GuildID: guildID,
		UserID:  targetID,
	})

	return c.NoContent(http.StatusNoContent)
}

type applyTimeoutRequest struct {
	DurationSeconds int64   `json:"duration_seconds"`
	Reason          *string `json:"reason"`
}

// ApplyTimeout handles PUT /api/v1/guilds/:id/members/:user_id/timeout.
func (h *ModerationHandler) ApplyTimeout(c echo.Context) error {
	guildID, targetID, perr := guildUserParams(c)
	if perr != nil {
		return perr
	}

	callerID := auth.GetUserID(c)

	var req applyTimeoutRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	timeout, err := h.service.ApplyTimeout(c.Request().Context(), guildID, callerID, targetID, req.DurationSeconds, req.Reason)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventTimeoutAdd, gateway.TimeoutAddData{
		GuildID: guildID,
		UserID:  targetID,
		Until:   timeout.Until,
	})

	return c.JSON(http.StatusOK, map[string]any{"data": timeout})
}

// RemoveTimeout handles DELETE /api/v1/guilds/:id/members/:user_id/timeout.
func (h *ModerationHandler) RemoveTimeout(c echo.Context) error {
	guildID, targetID, perr := guildUserParams(c)
	if perr != nil {
		return perr
	}

	callerID := auth.GetUserID(c)

	if err := h.service.RemoveTimeout(c.Request().Context(), guildID, callerID, targetID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventTimeoutRemove, gateway.TimeoutRemoveData{
		GuildID: guildID,
		UserID:  targetID,
	})

	return c.NoContent(http.StatusNoContent)
}

// GetTimeout handles GET /api/v1/guilds/:id/members/:user_id/timeout.
func (h *ModerationHandler) GetTimeout(c echo.Context) error {
	guildID, targetID, perr := guildUserParams(c)
	if perr != nil {
		return perr
	}

	callerID := auth.GetUserID(c)

	timeout, err := h.service.GetTimeout(c.Request().Context(), guildID, callerID, targetID)
	if err != nil {
		return mapServiceError(c, err)
	}
	if timeout == nil {
		return errorJSON(c, http.StatusNotFound, "NOT_FOUND", "member is not timed out")
	}

	return c.JSON(http.StatusOK, map[string]any{"data": timeout})
}

// ListTimeouts handles GET /api/v1/guilds/:id/timeouts.
func (h *ModerationHandler) ListTimeouts(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	callerID := auth.GetUserID(c)

	timeouts, err := h.service.ListTimeouts(c.Request().Context(), guildID, callerID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": timeouts})
}
