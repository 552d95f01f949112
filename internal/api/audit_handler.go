package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// AuditHandler exposes the guild audit log.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// GetGuildAuditLog handles GET /api/v1/guilds/:id/audit-log.
func (h *AuditHandler) GetGuildAuditLog(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.service.GetGuildAuditLog(c.Request().Context(), guildID, userID, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": entries})
}
