package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cynq/cynq-backend/internal/http/handlers"
	"github.com/cynq/cynq-backend/internal/http/middleware"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type Config struct {
	Log         *logger.Logger
	CORSOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Chat      *handlers.ChatHandler
	Sessions  *handlers.SessionHandler
	Ecosystem *handlers.EcosystemHandler
	Paths     *handlers.PathHandler
	Community *handlers.CommunityHandler
	Realtime  *handlers.RealtimeHandler
}

func New(cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("cynq-backend"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	api := router.Group("/api")

	// Public
	api.GET("/health", cfg.Health.Check)
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.Auth.Register)
		auth.POST("/login", cfg.Auth.Login)
		auth.POST("/refresh", cfg.Auth.Refresh)
		auth.POST("/logout", cfg.Auth.Logout)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	chat := protected.Group("/chat/:sessionId")
	{
		chat.POST("/chat", cfg.Chat.Send)
		chat.GET("/messages", cfg.Chat.Messages)
		chat.DELETE("/clear", cfg.Chat.Clear)
		chat.POST("/model", cfg.Chat.SetModel)
		chat.POST("/suggestions", cfg.Chat.Suggestions)
	}

	sessions := protected.Group("/sessions")
	{
		sessions.GET("", cfg.Sessions.List)
		sessions.POST("", cfg.Sessions.Create)
		sessions.GET("/:id", cfg.Sessions.Get)
		sessions.DELETE("/:id", cfg.Sessions.Delete)
		sessions.PUT("/:id/title", cfg.Sessions.Rename)
	}

	ecosystem := protected.Group("/ecosystem")
	{
		ecosystem.GET("", cfg.Ecosystem.Snapshot)
		ecosystem.POST("/import", cfg.Ecosystem.Import)
		ecosystem.POST("/relationships", cfg.Ecosystem.CreateRelationship)
		ecosystem.PUT("/relationships/:id", cfg.Ecosystem.UpdateRelationship)
		ecosystem.DELETE("/relationships/:id", cfg.Ecosystem.DeleteRelationship)
		ecosystem.POST("/:category", cfg.Ecosystem.CreateItem)
		ecosystem.DELETE("/:category/:id", cfg.Ecosystem.DeleteItem)
	}

	paths := protected.Group("/paths")
	{
		paths.GET("", cfg.Paths.List)
		paths.POST("", cfg.Paths.Create)
		paths.GET("/templates", cfg.Paths.Templates)
		paths.GET("/:pathId", cfg.Paths.Get)
		paths.DELETE("/:pathId", cfg.Paths.Delete)
		paths.PATCH("/:pathId/phases/:phaseId/tasks/:taskId", cfg.Paths.UpdateTask)
	}

	community := protected.Group("/community")
	{
		community.GET("/resources", cfg.Community.Resources)
		community.GET("/insights", cfg.Community.Insights)
		community.POST("/insights", cfg.Community.ShareInsight)
	}

	protected.GET("/events/stream", cfg.Realtime.Stream)

	return router
}
