package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"passInWeb/internal/config"
	handler "passInWeb/internal/modules/attendees/application/handler"
	"passInWeb/internal/modules/attendees/application/port"
	usecase "passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
	"passInWeb/internal/modules/attendees/infrastructure"
	transport "passInWeb/internal/modules/attendees/interface"
	"passInWeb/internal/platform/broker"
	"passInWeb/internal/shared/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("attendees api configured",
		slog.String("baseUrl", cfg.Attendees.BaseURL),
		slog.String("eventId", cfg.Attendees.EventID),
		slog.Duration("timeout", cfg.Attendees.Timeout),
		slog.String("filterMode", string(cfg.Attendees.FilterMode)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache, closeCache := buildPageCache(ctx, cfg.Cache, cfg.Attendees.EventID)
	defer closeCache()

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	sessions := usecase.NewSessionRegistry()

	// Use cases
	fetcher := infrastructure.NewAttendeeHTTPClient(cfg.Attendees.BaseURL, cfg.Attendees.EventID, cfg.Attendees.Timeout, nil)
	listUC := usecase.NewListAttendeesUseCase(fetcher, cache)
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	registry.Register(handler.NewCheckInStreamHandler(cfg.Kafka.CheckInTopic, cfg.Attendees.EventID, listUC, broadcastUC, sessions))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", registry.Topics()))
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	e, err := newServer(cfg, hub, listUC, broadcastUC, sessions)
	if err != nil {
		slog.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
}

func newServer(cfg *config.Config, hub *infrastructure.Hub, listUC *usecase.ListAttendeesUseCase, broadcastUC *usecase.BroadcastUseCase, sessions *usecase.SessionRegistry) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	renderer, err := transport.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	e.Renderer = renderer

	errorMapper := transport.NewFetchErrorMapper()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if writeErr := errorMapper.JSON(c, err); writeErr != nil {
			slog.Warn("error response failed", slog.Any("error", writeErr))
		}
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/healthz"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("requestId", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
				slog.LogAttrs(c.Request().Context(), slog.LevelWarn, "http request", attrs...)
				return nil
			}
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "http request", attrs...)
			return nil
		},
	}))

	presenter := domain.Presenter{Mode: cfg.Attendees.FilterMode, Path: "/"}
	const liveViewPath = "/ws/attendees"

	e.GET("/", transport.NewPageHandler(listUC, presenter, liveViewPath))
	e.GET("/attendees", transport.NewViewHandler(listUC, presenter, errorMapper))
	e.GET(liveViewPath, transport.NewLiveViewHandler(transport.LiveViewDeps{
		Hub:            hub,
		ListUC:         listUC,
		BroadcastUC:    broadcastUC,
		Sessions:       sessions,
		Presenter:      presenter,
		SendBuffer:     cfg.Websocket.SendBuffer,
		CommandTimeout: cfg.Attendees.Timeout + 5*time.Second,
	}))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": sessions.Len(),
			"clients":  hub.ClientCount(),
		})
	})

	if cfg.Server.DevProxyEnabled {
		if err := transport.RegisterDevProxy(e, cfg.Attendees.BaseURL); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// buildPageCache returns nil when caching is disabled. A redis cache that
// cannot be reached falls back to memory.
func buildPageCache(ctx context.Context, cfg config.CacheConfig, eventID string) (port.PageCache, func()) {
	noop := func() {}
	if !cfg.Enabled() {
		slog.Info("page cache disabled")
		return nil, noop
	}
	if !cfg.UsesRedis() {
		slog.Info("page cache in memory", slog.Duration("ttl", cfg.TTL))
		return infrastructure.NewMemoryPageCache(cfg.TTL), noop
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cache := infrastructure.NewRedisPageCache(client, eventID, cfg.TTL)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		slog.Warn("redis unavailable, using memory page cache", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
		_ = client.Close()
		return infrastructure.NewMemoryPageCache(cfg.TTL), noop
	}
	slog.Info("page cache in redis", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.TTL))
	return cache, func() { _ = client.Close() }
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := logging.NewTee(os.Stdout, file, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	writer := io.MultiWriter(os.Stdout, file)
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
