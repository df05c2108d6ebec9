package app

import (
	"github.com/cynq/cynq-backend/internal/http/handlers"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
	"github.com/cynq/cynq-backend/internal/realtime"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Chat      *handlers.ChatHandler
	Sessions  *handlers.SessionHandler
	Ecosystem *handlers.EcosystemHandler
	Paths     *handlers.PathHandler
	Community *handlers.CommunityHandler
	Realtime  *handlers.RealtimeHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    handlers.NewHealthHandler(),
		Auth:      handlers.NewAuthHandler(services.Auth),
		Chat:      handlers.NewChatHandler(services.Chat, services.Sessions, services.Suggestions),
		Sessions:  handlers.NewSessionHandler(services.Sessions),
		Ecosystem: handlers.NewEcosystemHandler(services.Ecosystem),
		Paths:     handlers.NewPathHandler(services.Paths),
		Community: handlers.NewCommunityHandler(services.Community),
		Realtime:  handlers.NewRealtimeHandler(hub),
	}
}
