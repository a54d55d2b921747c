package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/influencer-marketplace/backend/internal/config"
	"github.com/influencer-marketplace/backend/internal/http/handlers"
	"github.com/influencer-marketplace/backend/internal/middleware"
	"github.com/influencer-marketplace/backend/internal/rbac"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	campaignHandler *handlers.CampaignHandler,
	adRequestHandler *handlers.AdRequestHandler,
	adminHandler *handlers.AdminHandler,
	metaHandler *handlers.MetaHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	api.Get("/meta/platforms", metaHandler.GetPlatforms)
	api.Get("/meta/visibilities", metaHandler.GetVisibilities)

	// Protected endpoints, any authenticated role
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Get("/me", authHandler.GetMe)
	protected.Get("/categories", metaHandler.GetCategories)

	// Shared reads; the services apply ownership and visibility rules.
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Get("/ad-requests/:id", adRequestHandler.GetAdRequest)
	protected.Get("/ad-requests/:id/messages", adRequestHandler.GetAdRequestMessages)

	// Sponsor
	sponsor := protected.Group("", middleware.RequireRole(rbac.RoleSponsor))
	sponsor.Post("/campaigns", campaignHandler.CreateCampaign)
	sponsor.Get("/campaigns", campaignHandler.ListCampaigns)
	sponsor.Put("/campaigns/:id", campaignHandler.UpdateCampaign)
	sponsor.Delete("/campaigns/:id", campaignHandler.DeleteCampaign)
	sponsor.Get("/campaigns/:id/ad-requests", adRequestHandler.ListCampaignAdRequests)
	sponsor.Post("/campaigns/:id/ad-requests", adRequestHandler.CreateAdRequest)
	sponsor.Get("/campaigns/:id/eligible-influencers", adRequestHandler.EligibleInfluencers)
	sponsor.Put("/ad-requests/:id", adRequestHandler.EditAdRequest)
	sponsor.Delete("/ad-requests/:id", adRequestHandler.DeleteAdRequest)

	// Influencer
	influencer := protected.Group("", middleware.RequireRole(rbac.RoleInfluencer))
	influencer.Get("/profile", userHandler.GetProfile)
	influencer.Put("/profile", userHandler.UpdateProfile)
	influencer.Get("/explore/campaigns", campaignHandler.ListPublicCampaigns)
	influencer.Get("/ad-requests", adRequestHandler.ListAdRequests)
	influencer.Post("/ad-requests/:id/respond", adRequestHandler.RespondAdRequest)

	// Admin
	admin := protected.Group("/admin", middleware.RequireRole(rbac.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/flagged", adminHandler.ListFlaggedUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Post("/users/:id/toggle-flag", adminHandler.ToggleFlag)
	admin.Post("/categories", adminHandler.CreateCategory)
	admin.Put("/categories/:id", adminHandler.UpdateCategory)
	admin.Delete("/categories/:id", adminHandler.DeleteCategory)
	admin.Get("/campaigns", campaignHandler.ListAllCampaigns)
	admin.Put("/campaigns/:id", campaignHandler.UpdateCampaign)
	admin.Delete("/campaigns/:id", campaignHandler.DeleteCampaign)
	admin.Get("/messages", adminHandler.ListMessages)
	admin.Get("/ad-requests", adminHandler.ListAdRequests)
	admin.Put("/ad-requests/:id", adminHandler.UpdateAdRequest)
	admin.Delete("/ad-requests/:id", adminHandler.DeleteAdRequest)
	admin.Get("/analytics", adminHandler.Analytics)
	admin.Get("/settings", adminHandler.GetSettings)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
