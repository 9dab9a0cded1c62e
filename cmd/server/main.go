package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/nartaykz/travellog/docs"
	"github.com/nartaykz/travellog/internal/config"
	api "github.com/nartaykz/travellog/internal/http"
	"github.com/nartaykz/travellog/internal/log"
	"github.com/nartaykz/travellog/internal/metrics"
	"github.com/nartaykz/travellog/internal/oauth"
	"github.com/nartaykz/travellog/internal/queue"
	"github.com/nartaykz/travellog/internal/repo"
	"github.com/nartaykz/travellog/internal/session"
)

// @title Travellog API
// @version 0.1.0
// @description Social travel-logging backend: accounts, follow graph, experiences, timeline.
// @schemes http https
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		stdlog.Fatalf("log init: %v", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	ttl := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rds := session.NewRedis(cfg.RedisAddr, ttl)
		if err := rds.Ping(ctx); err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		defer rds.Close()
		sessions = rds
	} else {
		logger.Warn("REDIS_ADDR not set, sessions are in-memory and die with the process")
		sessions = session.NewMemory(ttl)
	}

	events := queue.Publisher(queue.NewNoop())
	if cfg.RabbitURL != "" {
		pub, err := queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
		events = pub
	}
	defer events.Close()

	verifier := oauth.NewVerifier(cfg.GoogleClientID)

	metrics.MustRegister()

	h := api.NewHandler(store, sessions, verifier, events)
	h.DefaultPicture = cfg.DefaultPicture
	h.FrontendURL = cfg.FrontendURL
	h.CookieSecure = cfg.CookieSecure
	h.SessionTTL = ttl
	h.RateLimitPerMin = cfg.RateLimitPerMin
	if cfg.GoogleClientID != "" && cfg.GoogleSecret != "" {
		h.OAuth = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirect, cfg.StateSecret, verifier)
	}

	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()
	logger.Info("travellog listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
