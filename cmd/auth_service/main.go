package main

import (
	"flag"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"askmira/internal/auth_service/api"
	"askmira/internal/auth_service/service"
	"askmira/internal/auth_service/store"
	"askmira/internal/config"
	"askmira/internal/database/mysql"
	"askmira/internal/database/redis"
	"askmira/pkg/logger"
	"askmira/pkg/ratelimiter"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("AuthService", "")
	appLogger.Info("Starting auth service...")

	if cfg.Auth.JwtSecret == "" {
		log.Fatal("auth.jwtSecret must be set")
	}

	// 3. Initialize Dependencies
	db, err := mysql.GetDB(&cfg.Databases.MySQL)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	userStore := store.NewStore(db)
	if err := userStore.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}

	// Redis 不可用时服务仍可运行，只是注销的 token 不会立即失效。
	var tokens service.TokenRevoker
	if cfg.Databases.Redis.Address != "" {
		rdb, err := redis.GetClient(&cfg.Databases.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, token revocation disabled: " + err.Error())
		} else {
			tokens = store.NewTokenStore(rdb)
		}
	}

	svc := service.NewService(userStore, tokens, cfg.Auth.JwtSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	handler := api.NewHandler(svc)

	var limiter ratelimiter.RateLimiter
	if rl := cfg.Middleware.RateLimiter; rl.Enabled {
		limiter = ratelimiter.NewTokenBucket(rl.Rate, rl.Capacity)
	}

	// 4. Start HTTP Server
	router := api.SetupRouter(handler, svc, tokens, limiter)

	addr := cfg.Auth.ListenAddress
	if addr == "" {
		addr = ":8000"
	}
	appLogger.Info("Auth service listening on " + addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
