package main

import (
	"context"
	"log"

	"huddle/config"
	"huddle/internal/handler"
	"huddle/internal/redis"
	"huddle/internal/repository"
	"huddle/internal/server"
	"huddle/internal/services"
	"huddle/pkg/database"
	"huddle/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()
	checks := map[string]server.HealthCheck{}

	var store repository.Store
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		l.Warnf("Using in-memory store; data is lost on restart")
		store = repository.NewMemoryStore()
	case config.StoreDriverPostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db, "up"); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		store = repository.NewPostgresStore(db)
		checks["database"] = func(ctx context.Context) error { return database.HealthCheck(ctx, db) }
	default:
		log.Fatalf("Unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	var cache services.MemberCache
	if cfg.RedisEnabled() {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := redis.Ping(ctx, client); err != nil {
			l.Warnf("Redis unreachable at startup, member cache will retry: %v", err)
		}
		cacheCfg := redis.DefaultCacheConfig()
		if cfg.MemberCacheTTL > 0 {
			cacheCfg.MemberTTL = cfg.MemberCacheTTL
		}
		memberCache := redis.NewMemberCache(client, cacheCfg)
		cache = memberCache
		checks["redis"] = memberCache.Ping
	}

	credentials := services.NewCredentialStore(store.Members, cfg.BcryptCost)
	tokens := services.NewTokenStore(store.Tokens)
	members := services.NewCachedMembers(store.Members, cache, l)

	authService := services.NewAuthService(credentials, tokens)
	profileService := services.NewProfileService(credentials, members)
	messageService := services.NewMessageService(store.Messages)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Profile:  handler.NewProfileHandler(profileService),
		Messages: handler.NewMessageHandler(messageService),
	}, services.NewAuthenticator(store.Tokens, members), checks)

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %v", err)
	}
}
