package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/TheShield2594/vortexchat-sub001/internal/api"
	"github.com/TheShield2594/vortexchat-sub001/internal/auth"
	"github.com/TheShield2594/vortexchat-sub001/internal/config"
	"github.com/TheShield2594/vortexchat-sub001/internal/database"
	"github.com/TheShield2594/vortexchat-sub001/internal/gateway"
	"github.com/TheShield2594/vortexchat-sub001/internal/ratelimit"
	redisclient "github.com/TheShield2594/vortexchat-sub001/internal/redis"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// --- Infrastructure ---

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := redisclient.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	sf, err := snowflake.NewGenerator(1, 1)
	if err != nil {
		log.Fatalf("snowflake: %v", err)
	}
	tokenSvc := auth.NewTokenService(cfg.JWTSecret)

	limiter := ratelimit.New()
	defer limiter.Stop()

	// --- Repositories ---

	users := database.NewUserRepository(pool)
	guilds := database.NewGuildRepository(pool)
	roles := database.NewRoleRepository(pool)
	members := database.NewMemberRepository(pool)
	messages := database.NewMessageRepository(pool)
	timeouts := database.NewTimeoutRepository(pool)
	rules := database.NewAutomodRuleRepository(pool)
	webhooks := database.NewWebhookRepository(pool)
	audit := database.NewAuditRepository(pool)

	// --- Services ---

	checker := service.NewPermissionChecker(guilds, members, roles)
	recorder := service.NewAuditRecorder(audit, sf)

	authSvc := service.NewAuthService(users, tokenSvc, rdb, sf)
	guildSvc := service.NewGuildService(guilds, members, roles, sf, checker)
	memberSvc := service.NewMemberService(members, guilds, roles)
	modSvc := service.NewModerationService(members, timeouts, checker, recorder)
	roleSvc := service.NewRoleService(roles, members, checker, recorder, sf)
	messageSvc := service.NewMessageService(messages, rules, modSvc, checker, limiter, sf)
	automodSvc := service.NewAutomodService(rules, checker, recorder, sf)
	webhookSvc := service.NewWebhookService(webhooks, checker, recorder, sf)
	auditSvc := service.NewAuditService(audit, checker)

	// --- Gateway ---

	gwManager := gateway.NewManager(tokenSvc, guilds, rdb)

	// --- Handlers ---

	deps := &api.Dependencies{
		Auth:         api.NewAuthHandler(authSvc),
		Guilds:       api.NewGuildHandler(guildSvc, gwManager),
		Members:      api.NewMemberHandler(memberSvc, gwManager),
		Moderation:   api.NewModerationHandler(modSvc, gwManager),
		Roles:        api.NewRoleHandler(roleSvc, gwManager),
		Messages:     api.NewMessageHandler(messageSvc, gwManager),
		Automod:      api.NewAutomodHandler(automodSvc, gwManager),
		Webhooks:     api.NewWebhookHandler(webhookSvc, gwManager),
		Audit:        api.NewAuditHandler(auditSvc),
		Gateway:      gwManager,
		TokenService: tokenSvc,
		Limiter:      limiter,
	}

	// --- Echo ---

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	api.SetupRouter(e, deps)

	// --- Start ---

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("vortexchat starting on %s", cfg.ServerAddr)
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-sigCtx.Done()
	log.Println("shutting down...")
	if err := e.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
