package app

import (
	"time"

	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
	"github.com/yungbote/strengthscope-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Port            string
	ContentPath     string
	RedisAddr       string
	SweepInterval   time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)
	contentPath := utils.GetEnv("CONTENT_PATH", "content/assessment.yaml", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	sweepIntervalSeconds := utils.GetEnvAsInt("STALE_SWEEP_INTERVAL", 3600, log)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		Port:            port,
		ContentPath:     contentPath,
		RedisAddr:       redisAddr,
		SweepInterval:   time.Duration(sweepIntervalSeconds) * time.Second,
	}
}
