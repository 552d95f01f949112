package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/ratelimit"
)

// Dependencies holds all handler instances and middleware for route wiring.
type Dependencies struct {
	Auth       *AuthHandler
	Guilds     *GuildHandler
	Members    *MemberHandler
	Moderation *ModerationHandler
	Roles      *RoleHandler
	Messages   *MessageHandler
	Automod    *AutomodHandler
	Webhooks   *WebhookHandler
	Audit      *AuditHandler
	Gateway    *gateway.Manager

	TokenService *auth.TokenService
	Limiter      *ratelimit.Limiter
}

// SetupRouter registers all API routes on the Echo instance.
func SetupRouter(e *echo.Echo, deps *Dependencies) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// WebSocket gateway
	e.GET("/gateway", deps.Gateway.HandleWebSocket)

	v1 := e.Group("/api/v1")

	// Auth routes — no auth middleware, stricter rate limit
	authGroup := v1.Group("/auth",
		RateLimitMiddleware(deps.Limiter, 5, time.Minute),
	)
	authGroup.POST("/register", deps.Auth.Register)
	authGroup.POST("/login", deps.Auth.Login)
	authGroup.POST("/refresh", deps.Auth.Refresh)

	// Protected routes — require JWT auth + general rate limit
	authMw := deps.TokenService.Middleware()
	protected := v1.Group("", authMw,
		RateLimitMiddleware(deps.Limiter, 50, time.Minute),
	)

	// Auth (protected)
	protected.POST("/auth/logout", deps.Auth.Logout)

	// Guilds
	protected.POST("/guilds", deps.Guilds.CreateGuild)
	protected.GET("/guilds/:id", deps.Guilds.GetGuild)
	protected.PATCH("/guilds/:id", deps.Guilds.UpdateGuild)
	protected.DELETE("/guilds/:id", deps.Guilds.DeleteGuild)
	protected.GET("/users/@me/guilds", deps.Guilds.ListMyGuilds)

	// Members
	protected.PUT("/guilds/:id/members/@me", deps.Members.JoinGuild)
	protected.DELETE("/guilds/:id/members/@me", deps.Members.LeaveGuild)
	protected.GET("/guilds/:id/members", deps.Members.ListMembers)
	protected.GET("/guilds/:id/members/:user_id", deps.Members.GetMember)

	// Moderation
	protected.DELETE("/guilds/:id/members/:user_id", deps.Moderation.KickMember)
	protected.PUT("/guilds/:id/members/:user_id/timeout", deps.Moderation.ApplyTimeout)
	protected.DELETE("/guilds/:id/members/:user_id/timeout", deps.Moderation.RemoveTimeout)
	protected.GET("/guilds/:id/members/:user_id/timeout", deps.Moderation.GetTimeout)
	protected.GET("/guilds/:id/timeouts", deps.Moderation.ListTimeouts)

	// Roles
	protected.POST("/guilds/:id/roles", deps.Roles.CreateRole)
	protected.GET("/guilds/:id/roles", deps.Roles.ListRoles)
	protected.PATCH("/guilds/:id/roles/:role_id", deps.Roles.UpdateRole)
	protected.DELETE("/guilds/:id/roles/:role_id", deps.Roles.DeleteRole)
	protected.PUT("/guilds/:id/members/:user_id/roles/:role_id", deps.Roles.AssignRole)
	protected.DELETE("/guilds/:id/members/:user_id/roles/:role_id", deps.Roles.RemoveRole)

	// Messages — creation gets a tighter per-user window on top of the
	// guild automod rules
	protected.POST("/guilds/:id/channels/:channel_id/messages", deps.Messages.SendMessage,
		RateLimitMiddleware(deps.Limiter, 10, 10*time.Second),
	)
	protected.GET("/guilds/:id/channels/:channel_id/messages", deps.Messages.GetMessages)
	protected.DELETE("/guilds/:id/messages/:message_id", deps.Messages.DeleteMessage)
	protected.PUT("/guilds/:id/messages/:message_id/pin", deps.Messages.PinMessage)
	protected.DELETE("/guilds/:id/messages/:message_id/pin", deps.Messages.UnpinMessage)

	// Automod rules
	protected.POST("/guilds/:id/automod/rules", deps.Automod.CreateRule)
	protected.GET("/guilds/:id/automod/rules", deps.Automod.ListRules)
	protected.GET("/guilds/:id/automod/rules/:rule_id", deps.Automod.GetRule)
	protected.PATCH("/guilds/:id/automod/rules/:rule_id", deps.Automod.UpdateRule)
	protected.DELETE("/guilds/:id/automod/rules/:rule_id", deps.Automod.DeleteRule)

	// Webhooks
	protected.POST("/guilds/:id/webhooks", deps.Webhooks.CreateWebhook)
	protected.GET("/guilds/:id/webhooks", deps.Webhooks.ListWebhooks)
	protected.PATCH("/guilds/:id/webhooks/:webhook_id", deps.Webhooks.UpdateWebhook)
	protected.DELETE("/guilds/:id/webhooks/:webhook_id", deps.Webhooks.DeleteWebhook)

	// Audit log
	protected.GET("/guilds/:id/audit-log", deps.Audit.GetGuildAuditLog)
}
