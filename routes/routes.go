package routes

import (
	"context"
	"log/slog"
	"net/http"

	"friendgraph-api/config"
	"friendgraph-api/controllers"
	"friendgraph-api/middleware"
	"friendgraph-api/repositories"
	"friendgraph-api/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and controllers onto r. ctx bounds
// the lifetime of background helpers such as the rate limiter cleanup.
func SetupRoutes(ctx context.Context, r *gin.Engine, db *gorm.DB, cfg *config.Config, publisher services.EventPublisher, logger *slog.Logger) {
	accounts := repositories.NewAccountRepository(db)
	content := repositories.NewContentRepository(db)

	visibility := services.NewVisibilityResolver(accounts)
	relationshipService := services.NewRelationshipService(accounts, publisher, logger)
	profileService := services.NewProfileService(accounts)
	searchService := services.NewSearchService(content, visibility)
	pollService := services.NewPollService(content, visibility)

	friendController := controllers.NewFriendController(relationshipService, profileService, logger)
	userController := controllers.NewUserController(profileService, logger)
	searchController := controllers.NewSearchController(searchService, logger)
	pollController := controllers.NewPollController(pollService, logger)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1
	v1 := r.Group("/api/v1")

	// Public content, friend-only items need a token
	optional := v1.Group("/")
	optional.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		optional.GET("/search", searchController.Search)
		optional.GET("/polls", pollController.GetPolls)
		optional.GET("/polls/:id", pollController.GetPoll)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		friends := protected.Group("/friends")
		{
			friends.GET("", friendController.GetFriends)
			friends.GET("/requests", friendController.GetPendingRequests)
			friends.GET("/:user_id/mutual", friendController.GetMutualFriends)
			friends.GET("/:user_id/status", friendController.GetFriendshipStatus)

			mutations := friends.Group("")
			mutations.Use(middleware.RateLimit(ctx, cfg.RateLimitPerMinute, cfg.RateLimitBurst))
			{
				mutations.POST("/requests/:user_id", friendController.SendFriendRequest)
				mutations.POST("/requests/:user_id/accept", friendController.AcceptFriendRequest)
				mutations.POST("/requests/:user_id/decline", friendController.DeclineFriendRequest)
				mutations.DELETE("/:user_id", friendController.RemoveFriend)
			}
		}

		users := protected.Group("/users")
		{
			users.GET("/suggestions", userController.GetSuggestions)
			users.GET("/:user_id", userController.GetProfile)
		}
	}
}
