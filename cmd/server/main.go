package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"servery/internal/api"
	"servery/internal/clock"
	"servery/internal/config"
	"servery/internal/events"
	"servery/internal/metrics"
	"servery/internal/restoapi"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("SERVERY_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		zerolog.SetGlobalLevel(level)
	}

	if cfg.Upstream.BaseURL == "" {
		logger.Fatal().Msg("set upstream.base_url in config")
	}

	client := restoapi.NewClient(cfg.Upstream.BaseURL)
	var rdb *redis.Client
	if cfg.Redis.Address != "" && cfg.CacheTTL() > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		client.UseRedisCache(rdb, cfg.CacheTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()
	bus.Subscribe(events.TypeScheduleFetched, func(e events.Event) {
		logger.Debug().Int64("restaurant_id", e.RestaurantID).Msg("schedule fetched")
	})
	bus.Subscribe(events.TypeSlotsGenerated, func(e events.Event) {
		logger.Debug().
			Int64("restaurant_id", e.RestaurantID).
			Str("kind", e.Detail).
			Int("count", e.Count).
			Msg("slots generated")
	})

	src := clock.NewSource(clock.RealClock{}, cfg.Location())

	rps, burst := cfg.Limit()
	server := api.NewHTTPServer(client, src, bus, api.Options{
		Port:               cfg.Server.Port,
		APIKey:             cfg.Server.APIKey,
		DefaultLeadMinutes: cfg.DefaultLead(),
		RateRPS:            rps,
		RateBurst:          burst,
	}, &logger)
	if rdb != nil {
		server.UseRedis(rdb)
	}

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	logger.Info().Int("port", cfg.Server.Port).Str("timezone", cfg.Location().String()).Msg("servery started")
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("api server error")
	}
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
