package app

import (
	"strings"
	"time"

	"github.com/cynq/cynq-backend/internal/pkg/envutil"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type Config struct {
	Port        string
	CORSOrigins []string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	LLMBaseURL string
	LLMAPIKey  string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)

	var origins []string
	for _, o := range strings.Split(envutil.GetEnv("CORS_ORIGINS", "", log), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:            envutil.GetEnv("PORT", "8080", log),
		CORSOrigins:     origins,
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		LLMBaseURL:      envutil.GetEnv("LLM_BASE_URL", "", log),
		LLMAPIKey:       envutil.GetEnv("LLM_API_KEY", "", log),
	}
}
