package app

import (
	"github.com/gin-gonic/gin"

	"github.com/cynq/cynq-backend/internal/http/router"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return router.New(router.Config{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,
		Health:         handlers.Health,
		Auth:           handlers.Auth,
		Chat:           handlers.Chat,
		Sessions:       handlers.Sessions,
		Ecosystem:      handlers.Ecosystem,
		Paths:          handlers.Paths,
		Community:      handlers.Community,
		Realtime:       handlers.Realtime,
	})
}
