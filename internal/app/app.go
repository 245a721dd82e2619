package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movetrack/internal/broadcast"
	"movetrack/internal/cache"
	"movetrack/internal/config"
	"movetrack/internal/db"
	httpserver "movetrack/internal/http"
	"movetrack/internal/http/handlers"
	"movetrack/internal/ingest"
	"movetrack/internal/pipeline"
	"movetrack/internal/redisclient"
	"movetrack/internal/repository"
	"movetrack/internal/ws"
)

const wsWriteTimeout = 10 * time.Second

// App wires movetrack dependencies.
type App struct {
	server     *httpserver.Server
	subscriber *ingest.Subscriber
	sqlDB      *sql.DB
	redis      *redis.Client
	logger     *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := redisclient.New(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	hub := broadcast.NewHub(cfg.Broadcast.BufferSize, logger)
	latestStore := cache.NewLatestStore(redisClient, cfg.CacheTTL())
	sensorRepo := repository.NewSensorRepository(sqlDB)
	processor := pipeline.NewProcessor(sensorRepo, hub, latestStore, logger)
	subscriber := ingest.NewSubscriber(redisClient, cfg.Ingest.Channel, processor, logger)
	wsServer := ws.NewServer(hub, wsWriteTimeout, logger)

	routes := httpserver.Routes{
		GPSStream: wsServer.HandleGPS,
		Latest:    handlers.NewLatestHandler(latestStore, logger).ServeHTTP,
		Health:    handlers.NewHealthHandler(),
		Metrics:   promhttp.Handler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:     server,
		subscriber: subscriber,
		sqlDB:      sqlDB,
		redis:      redisClient,
		logger:     logger,
	}, nil
}

// Run starts the ingest loop and HTTP server; whichever stops first
// takes the other down with it.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ingestErr := make(chan error, 1)
	go func() {
		ingestErr <- a.subscriber.Run(runCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Run(runCtx)
	}()

	select {
	case err := <-ingestErr:
		cancel()
		<-serverErr
		return err
	case err := <-serverErr:
		cancel()
		<-ingestErr
		return err
	}
}

// Close releases resources.
func (a *App) Close() {
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}
