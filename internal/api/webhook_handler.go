package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// WebhookHandler handles guild webhook endpoints.
type WebhookHandler struct {
	service *service.WebhookService
	gateway gateway.Dispatcher
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(svc *service.WebhookService, gw gateway.Dispatcher) *WebhookHandler {
	return &WebhookHandler{service: svc, gateway: gw}
}

type createWebhookRequest struct {
	ChannelID int64  `json:"channel_id,string"`
	Name      string `json:"name"`
}

// CreateWebhook handles POST /api/v1/guilds/:id/webhooks. The response is
// the only place the webhook token is ever returned.
func (h *WebhookHandler) CreateWebhook(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	var req createWebhookRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	webhook, err := h.service.CreateWebhook(c.Request().Context(), guildID, req.ChannelID, userID, req.Name)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventWebhooksUpdate, gateway.WebhooksUpdateData{
		GuildID:   guildID,
		ChannelID: webhook.ChannelID,
	})

	return c.JSON(http.StatusCreated, map[string]any{"data": webhook})
}

// ListWebhooks handles GET /api/v1/guilds/:id/webhooks.
func (h *WebhookHandler) ListWebhooks(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}

	userID := auth.GetUserID(c)

	webhooks, err := h.service.ListWebhooks(c.Request().Context(), guildID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": webhooks})
}

type updateWebhookRequest struct {
	Name string `json:"name"`
}

// UpdateWebhook handles PATCH /api/v1/guilds/:id/webhooks/:webhook_id.
func (h *WebhookHandler) UpdateWebhook(c echo.Context) error {
	guildID, webhookID, perr := guildWebhookParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	var req updateWebhookRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	webhook, err := h.service.UpdateWebhook(c.Request().Context(), guildID, userID, webhookID, req.Name)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventWebhooksUpdate, gateway.WebhooksUpdateData{
		GuildID:   guildID,
		ChannelID: webhook.ChannelID,
	})

	return c.JSON(http.StatusOK, map[string]any{"data": webhook})
}

// DeleteWebhook handles DELETE /api/v1/guilds/:id/webhooks/:webhook_id.
func (h *WebhookHandler) DeleteWebhook(c echo.Context) error {
	guildID, webhookID, perr := guildWebhookParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	if err := h.service.DeleteWebhook(c.Request().Context(), guildID, userID, webhookID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventWebhooksUpdate, gateway.WebhooksUpdateData{
		GuildID: guildID,
	})

	return c.NoContent(http.StatusNoContent)
}

func guildWebhookParams(c echo.Context) (guildID, webhookID int64, err error) {
	guildID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	webhookID, err = strconv.ParseInt(c.Param("webhook_id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid webhook ID")
	}
	return guildID, webhookID, nil
}
