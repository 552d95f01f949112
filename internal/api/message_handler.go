package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
)

// MessageHandler handles message and pin endpoints.
type MessageHandler struct {
	service *service.MessageService
	gateway gateway.Dispatcher
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(svc *service.MessageService, gw gateway.Dispatcher) *MessageHandler {
	return &MessageHandler{service: svc, gateway: gw}
}

func guildChannelParams(c echo.Context) (guildID, channelID int64, err error) {
	guildID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	channelID, err = strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		return 0, 0, errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid channel ID")
	}
	return guildID, channelID, nil
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage handles POST /api/v1/guilds/:id/channels/:channel_id/messages.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	guildID, channelID, perr := guildChannelParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}

	msg, err := h.service.SendMessage(c.Request().Context(), guildID, channelID, userID, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventMessageCreate, msg)

	return c.JSON(http.StatusCreated, map[string]any{"data": msg})
}

// GetMessages handles GET /api/v1/guilds/:id/channels/:channel_id/messages.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	guildID, channelID, perr := guildChannelParams(c)
	if perr != nil {
		return perr
	}

	userID := auth.GetUserID(c)

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 100 {
			return errorJSON(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be 1-100")
		}
		limit = parsed
	}

	var before *int64
	if b := c.QueryParam("before"); b != "" {
		parsed, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "INVALID_BEFORE", "invalid before cursor")
		}
		before = &parsed
	}

	messages, err := h.service.GetMessages(c.Request().Context(), guildID, channelID, userID, before, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": messages})
}

// DeleteMessage handles DELETE /api/v1/guilds/:id/messages/:message_id.
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	messageID, err := strconv.ParseInt(c.Param("message_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid message ID")
	}

	userID := auth.GetUserID(c)

	if err := h.service.DeleteMessage(c.Request().Context(), guildID, userID, messageID); err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventMessageDelete, map[string]any{"id": messageID})

	return c.NoContent(http.StatusNoContent)
}

// PinMessage handles PUT /api/v1/guilds/:id/messages/:message_id/pin.
func (h *MessageHandler) PinMessage(c echo.Context) error {
	return h.setPin(c, true)
}

// UnpinMessage handles DELETE /api/v1/guilds/:id/messages/:message_id/pin.
func (h *MessageHandler) UnpinMessage(c echo.Context) error {
	return h.setPin(c, false)
}

func (h *MessageHandler) setPin(c echo.Context, pinned bool) error {
	guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid guild ID")
	}
	messageID, err := strconv.ParseInt(c.Param("message_id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "INVALID_ID", "invalid message ID")
	}

	userID := auth.GetUserID(c)
	ctx := c.Request().Context()

	if pinned {
		err = h.service.PinMessage(ctx, guildID, userID, messageID)
	} else {
		err = h.service.UnpinMessage(ctx, guildID, userID, messageID)
	}
	if err != nil {
		return mapServiceError(c, err)
	}

	h.gateway.DispatchToGuild(guildID, gateway.EventMessagePinUpdate, gateway.MessagePinData{
		GuildID:   guildID,
		MessageID: messageID,
		Pinned:    pinned,
	})

	return c.NoContent(http.StatusNoContent)
}
