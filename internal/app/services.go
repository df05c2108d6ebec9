package app

import (
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	"github.com/cynq/cynq-backend/internal/llm"
	"github.com/cynq/cynq-backend/internal/llm/mock"
	"github.com/cynq/cynq-backend/internal/llm/oaihttp"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
	"github.com/cynq/cynq-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Sessions    services.SessionService
	Chat        services.ChatService
	Suggestions services.SuggestionService
	Ecosystem   services.EcosystemService
	Paths       services.CriticalPathService
	Community   services.CommunityService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet *repos.All, events services.EventPublisher) (Services, error) {
	log.Info("Wiring services...")

	engine, err := wireEngine(log, cfg)
	if err != nil {
		return Services{}, err
	}

	authService := services.NewAuthService(
		db, log,
		reposet.User,
		reposet.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	sessionService := services.NewSessionService(db, log, reposet.ChatSession)
	chatService := services.NewChatService(db, log, reposet.ChatSession, reposet.ChatMessage, engine, events)
	ecosystemService := services.NewEcosystemService(db, log, reposet.Entity, reposet.Relationship, events)
	suggestionService := services.NewSuggestionService(db, log, reposet.ChatSession, ecosystemService, engine)
	pathService := services.NewCriticalPathService(db, log, reposet.CriticalPath)
	communityService := services.NewCommunityService(db, log, reposet.CommunityResource, reposet.AnonymizedInsight)

	return Services{
		Auth:        authService,
		Sessions:    sessionService,
		Chat:        chatService,
		Suggestions: suggestionService,
		Ecosystem:   ecosystemService,
		Paths:       pathService,
		Community:   communityService,
	}, nil
}

// wireEngine picks the upstream text provider. Without a base URL the
// app runs against the in-process mock, which keeps local development
// and CI off the network.
func wireEngine(log *logger.Logger, cfg Config) (llm.Engine, error) {
	if cfg.LLMBaseURL == "" {
		log.Warn("LLM_BASE_URL not set, using mock engine")
		return &mock.Engine{}, nil
	}
	return oaihttp.New(oaihttp.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
	})
}
