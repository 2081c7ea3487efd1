package app

import (
	"context"
	"log/slog"
	"time"

	httpapp "github.com/avelkov/sporthub/internal/app/http"
	metricsapp "github.com/avelkov/sporthub/internal/app/metrics"
	storageapp "github.com/avelkov/sporthub/internal/app/storage"
	redisapp "github.com/avelkov/sporthub/internal/app/storage/redis"
	"github.com/avelkov/sporthub/internal/config"
	"github.com/avelkov/sporthub/internal/kafka"
	"github.com/avelkov/sporthub/internal/lib/validation"
	authservice "github.com/avelkov/sporthub/internal/services/auth"
	eventsservice "github.com/avelkov/sporthub/internal/services/events"
	outboxservice "github.com/avelkov/sporthub/internal/services/outbox"
	transport "github.com/avelkov/sporthub/internal/transport/http"
)

const (
	eventsLimit       = 100
	producingInterval = time.Millisecond * 1000
)

type App struct {
	httpServer   *httpapp.App
	metrics      *metricsapp.App
	storage      *storageapp.App
	redisStorage *redisapp.App
	outboxSender *outboxservice.Sender
}

func New(log *slog.Logger, cfg *config.Config) *App {
	metrics := metricsapp.New(log, cfg.MetricsPort)

	storage := storageapp.MustCreateApp(cfg.DatabaseURL, log)
	redisApp := redisapp.New(log, cfg.RedisAddr, cfg.CacheTTL)

	kafkaPublisher := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	outboxSender := outboxservice.NewSender(log, kafkaPublisher, storage.Storage)

	authService := authservice.New(
		log,
		storage.Storage,
		storage.Storage,
		cfg.TokenSecret,
		cfg.TokenTTL,
	)

	eventsService := eventsservice.New(
		log,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		storage.Storage,
		redisApp.Storage,
	)

	server := transport.NewServer(
		log,
		validation.New(),
		transport.NewJWTResolver(cfg.TokenSecret),
		authService,
		eventsService,
		metrics,
	)

	httpApp := httpapp.New(log, cfg.HTTPPort, server.Handler())

	return &App{
		httpServer:   httpApp,
		metrics:      metrics,
		storage:      storage,
		redisStorage: redisApp,
		outboxSender: outboxSender,
	}
}

func (a *App) MustRun() {
	go a.httpServer.MustRun()
	go a.metrics.MustRun()
	go a.outboxSender.StartProducing(context.Background(), eventsLimit, producingInterval)
}

func (a *App) Stop() error {
	if err := a.httpServer.Stop(); err != nil {
		return err
	}
	a.storage.Stop()
	a.outboxSender.StopSending()
	return a.redisStorage.Stop()
}
