package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lavka/internal/api"
	"lavka/internal/config"
	"lavka/internal/domain"
	"lavka/internal/events"
	"lavka/internal/logging"
	"lavka/internal/metrics"
	"lavka/internal/repository"
	"lavka/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	items := store.NewItemStore()
	carts := store.NewCartStore()
	linker := store.NewCartItemLinker(items, carts)

	if err := seedItems(cfg, items, &logger); err != nil {
		return err
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	limiter := initLimiter(cfg, redisClient, &logger)

	bus := events.NewEventBus()
	subscribeAuditLog(bus, &logger)

	httpServer := api.NewHTTPServer(cfg.Server, items, carts, linker, limiter, bus, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// seedItems preloads the catalog through the regular create operation so
// seeded entries get identifiers 0..N-1 like any other item.
func seedItems(cfg *config.Config, items *store.ItemStore, logger *zerolog.Logger) error {
	itemsPath := os.Getenv("ITEMS_PATH")
	if itemsPath == "" {
		itemsPath = cfg.Seed.ItemsPath
	}
	if itemsPath == "" {
		return nil
	}

	itemsData, err := os.ReadFile(itemsPath)
	if err != nil {
		logger.Error().Err(err).Str("items_path", itemsPath).Msg("read seed items")
		return err
	}

	var seed struct {
		Items []struct {
			Name  string  `yaml:"name"`
			Price float64 `yaml:"price"`
		} `yaml:"items"`
	}
	if err := yaml.Unmarshal(itemsData, &seed); err != nil {
		logger.Error().Err(err).Str("items_path", itemsPath).Msg("parse seed items")
		return err
	}

	for _, entry := range seed.Items {
		items.Create(entry.Name, entry.Price)
	}

	logger.Info().Int("count", len(seed.Items)).Msg("catalog seeded")
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func initLimiter(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.LimiterRepository {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	memory := repository.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	if redisClient == nil {
		return memory
	}

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	limit := int64(cfg.RateLimit.RPS * float64(cfg.RateLimit.WindowSeconds))
	if limit < 1 {
		limit = 1
	}
	primary := repository.NewRedisLimiter(redisClient, limit, window)

	return repository.NewFailoverLimiter(primary, memory, logger)
}

func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	audit := logger.With().Str("component", "audit").Logger()
	handler := func(event *events.Event) error {
		audit.Info().Str("event", event.Type).RawJSON("payload", event.Payload).Msg("domain event")
		return nil
	}

	for _, eventType := range []string{
		events.EventItemCreated,
		events.EventItemDeleted,
		events.EventCartCreated,
		events.EventCartItemAdded,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.Server.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
