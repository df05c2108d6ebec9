package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	"github.com/cynq/cynq-backend/internal/db"
	"github.com/cynq/cynq-backend/internal/observability"
	"github.com/cynq/cynq-backend/internal/pkg/envutil"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
	"github.com/cynq/cynq-backend/internal/realtime"
	"github.com/cynq/cynq-backend/internal/realtime/bus"
	"github.com/cynq/cynq-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    *repos.All
	Services Services
	Hub      *realtime.Hub

	sseBus       bus.Bus
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "cynq-backend",
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		Version:     envutil.GetEnv("APP_VERSION", "", log),
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	if err := db.EnsureConstraints(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres constraints: %w", err)
	}

	hub := realtime.NewHub(log)

	// Without a redis address events fan out in-process only. With one,
	// publishes go through redis and come back via the forwarder, so
	// every instance (this one included) sees them.
	var events services.EventPublisher = hub
	var sseBus bus.Bus
	if os.Getenv("REDIS_ADDR") != "" {
		b, err := bus.NewRedisBus(log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init redis bus: %w", err)
		}
		sseBus = b
		events = busPublisher{bus: b, log: log}
	}

	reposet := repos.New(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, events)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset, hub)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Hub:          hub,
		sseBus:       sseBus,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.sseBus != nil {
		if err := a.sseBus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			a.Log.Error("redis forwarder failed to start", "error", err)
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.sseBus != nil {
		if err := a.sseBus.Close(); err != nil {
			a.Log.Warn("redis bus close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

// busPublisher routes service events through the redis bus instead of
// the local hub. StartForwarder delivers them back to the hub.
type busPublisher struct {
	bus bus.Bus
	log *logger.Logger
}

func (p busPublisher) Publish(channel, event string, payload any) {
	msg := realtime.SSEMessage{Channel: channel, Event: event, Data: payload}
	if err := p.bus.Publish(context.Background(), msg); err != nil {
		p.log.Warn("bus publish failed", "channel", channel, "event", event, "error", err)
	}
}
