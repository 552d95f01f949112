package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// RoleHandler handles role endpoints.
type RoleHandler struct {
	service *service.RoleService
	gateway gateway.Dispatcher
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(svc *service.RoleService, gw gateway.Dispatcher) *RoleHandler {
	return &RoleHandler{service: svc, gateway: gw}
}

// CreateRole handles POST /api/v1/guilds/:id/roles.
func (h *RoleHandler) CreateRole(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	var req service.CreateRoleInput
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	role, err := h.service.CreateRole(c.Request().Context(), guildID, userID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventGuildRoleCreate, role)

	return c.JSON(http.StatusCreated, map[string]any{"data": role})
}

// ListRoles handles GET /api/v1/guilds/:id/roles.
func (h *RoleHandler) ListRoles(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	roles, err := h.service.ListRoles(c.Request().Context(), guildID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": roles})
}

// UpdateRole handles PATCH /api/v1/guilds/:id/roles/:role_id.
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	roleID, err := strconv.ParseInt(c.Param("role_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid role ID")
	}

	userID := auth.GetUserID(c)

	var req service.UpdateRoleInput
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	role, err := h.service.UpdateRole(c.Request().Context(), guildID, userID, roleID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventGuildRoleUpdate, role)

	return c.JSON(http.StatusOK, map[string]any{"data": role})
}

// DeleteRole handles DELETE /api/v1/guilds/:id/roles/:role_id.
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	roleID, err := strconv.ParseInt(c.Param("role_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid role ID")
	}

	userID := auth.GetUserID(c)

	if err := h.service.DeleteRole(c.Request().Context(), guildID, userID, roleID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventGuildRoleDelete, map[string]any{"id": roleID})

	return c.NoContent(http.StatusNoContent)
}

// AssignRole handles PUT /api/v1/guilds/:id/members/:user_id/roles/:role_id.
func (h *RoleHandler) AssignRole(c echo.Context) error {
	return h.changeMemberRole(c, h.service.AssignRole)
}

// RemoveRole handles DELETE /api/v1/guilds/:id/members/:user_id/roles/:role_id.
func (h *RoleHandler) RemoveRole(c echo.Context) error {
	return h.changeMemberRole(c, h.service.RemoveRole)
}

func (h *RoleHandler) changeMemberRole(c echo.Context, op func(ctx context.Context, guildID, actorID, targetID, roleID int64) error) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid user ID")
	}
	roleID, err := strconv.ParseInt(c.Param("role_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid role ID")
	}

	callerID := auth.GetUserID(c)

	if err := op(c.Request().Context(), guildID, callerID, targetID, roleID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventGuildMemberUpdate, map[string]any{
		"guild_id": guildID,
		"user_id":  targetID,
	})

	return c.NoContent(http.StatusNoContent)
}
