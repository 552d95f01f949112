package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// MemberHandler handles member endpoints. Kicking is a moderation action
// and lives on ModerationHandler.
type MemberHandler struct {
	service *service.MemberService
	gateway gateway.Dispatcher
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(svc *service.MemberService, gw gateway.Dispatcher) *MemberHandler {
	return &MemberHandler{service: svc, gateway: gw}
}

// JoinGuild handles PUT /api/v1/guilds/:id/members/@me.
func (h *MemberHandler) JoinGuild(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	member, err := h.service.JoinGuild(c.Request().Context(), guildID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.SubscribeToGuild(userID, guildID)
	h.gateway.DispatchToGuildExcept(guildID, userID, gateway.EventGuildMemberAdd, member)

	return c.JSON(http.StatusCreated, map[string]any{"data": member})
}

// ListMembers handles GET /api/v1/guilds/:id/members.
func (h *MemberHandler) ListMembers(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	members, err := h.service.ListMembers(c.Request().Context(), guildID, userID, limit, offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": members})
}

// GetMember handles GET /api/v1/guilds/:id/members/:user_id.
func (h *MemberHandler) GetMember(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	targetUserID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
	}

	callerID := auth.GetUserID(c)

	member, err := h.service.GetMember(c.Request().Context(), guildID, callerID, targetUserID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": member})
}

// LeaveGuild handles DELETE /api/v1/guilds/:id/members/@me.
func (h *MemberHandler) LeaveGuild(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	if err := h.service.LeaveGuild(c.Request().Context(), guildID, userID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.UnsubscribeFromGuild(userID, guildID)
	h.gateway.DispatchToGuild(guildID, gateway.EventGuildMemberRemove, gateway.MemberRemoveData{
		GuildID: guildID,
		UserID:  userID,
	})

	return c.NoContent(http.StatusNoContent)
}
