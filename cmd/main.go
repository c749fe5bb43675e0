package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/matchup-generator/config"
	"github.com/Dosada05/matchup-generator/db"
	"github.com/Dosada05/matchup-generator/handlers"
	"github.com/Dosada05/matchup-generator/matchup"
	"github.com/Dosada05/matchup-generator/mcpserver"
	"github.com/Dosada05/matchup-generator/realtime"
	"github.com/Dosada05/matchup-generator/repositories"
	api "github.com/Dosada05/matchup-generator/routes"
	"github.com/Dosada05/matchup-generator/scheduler"
	"github.com/Dosada05/matchup-generator/services"
	"github.com/Dosada05/matchup-generator/settings"
	"github.com/Dosada05/matchup-generator/storage"
	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

// @title           Matchup Generator API
// @version         1.0
// @description     Random matchups and daily player standings for a football club game.
// @BasePath        /api
func main() {
	// Настройка логгера. Уровень уточняется после загрузки конфигурации
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logLevel.Set(cfg.SlogLevel())
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply database schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	// Хранилище логотипов: без ключей R2 только отдаём уже загруженные
	var uploader storage.FileUploader
	if r2cfg := cfg.R2.StorageConfig(); r2cfg.Configured() {
		uploader, err = storage.NewR2Uploader(ctx, r2cfg)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", r2cfg.BucketName))
	} else {
		uploader = storage.NewReadOnlyStore(cfg.R2.PublicBaseURL)
		logger.Warn("R2 credentials not set, logo uploads disabled")
	}

	clock := clockwork.NewRealClock()

	checks := map[string]handlers.PingFunc{
		"postgres": dbConn.PingContext,
	}

	// Настройки сессий: Redis, если задан, иначе память процесса
	var (
		settingsStore settings.Store
		memStore      *settings.MemoryStore
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Не фатально: сервис настроек вернёт значения по умолчанию
			logger.Warn("redis is not reachable", slog.Any("error", err))
		}
		settingsStore = settings.NewRedisStore(rdb, cfg.SessionTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Info("session settings stored in redis")
	} else {
		memStore = settings.NewMemoryStore(clock, cfg.SessionTTL)
		settingsStore = memStore
		logger.Info("session settings stored in memory")
	}

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn, participantRepo)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	catalogService := services.NewCatalogService(teamRepo, playerRepo, uploader, clock, cfg.CatalogTTL, logger)
	board := services.NewTodayBoard(catalogService, matchRepo, participantRepo, wsHub, clock, logger)
	settingsService := services.NewSettingsService(settingsStore, logger)
	matchupService := services.NewMatchupService(catalogService, board, settingsService, matchup.NewSeededPicker(), clock, logger)
	matchService := services.NewMatchService(matchRepo, board, logger)
	teamService := services.NewTeamService(teamRepo, catalogService, uploader, wsHub, logger)
	playerService := services.NewPlayerService(playerRepo, catalogService, board, wsHub, logger)
	logger.Info("Services initialized")

	// Планировщик: смена дня, чистка сессий, обновление каталога
	var pruner scheduler.Pruner
	if memStore != nil {
		pruner = memStore
	}
	jobs, err := scheduler.NewScheduler(
		scheduler.Config{IdleTimeout: cfg.SessionIdleTimeout, CatalogRefresh: cfg.CatalogTTL},
		board,
		matchupService,
		catalogService,
		pruner,
		clock,
		logger,
	)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	if err := jobs.Start(); err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobs.Stop(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Health:    handlers.NewHealthHandler(checks, clock),
		Team:      handlers.NewTeamHandler(teamService, matchupService),
		Player:    handlers.NewPlayerHandler(playerService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Matchup:   handlers.NewMatchupHandler(matchupService),
		Match:     handlers.NewMatchHandler(matchService, board),
		WebSocket: handlers.NewWebSocketHandler(wsHub, cfg.AllowedOrigins, logger),
	}
	if cfg.MCPEnabled {
		h.MCP = mcpserver.Handler(mcpserver.New(matchupService, board, teamService, logger))
		logger.Info("MCP endpoint enabled", slog.String("version", version))
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.SecureCookies,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			shutdownDeps(stop, dbConn, logger)
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	// hub закрывает websocket-клиентов по отмене контекста
	stop()
	logger.Info("application exited")
}

// shutdownDeps is used on paths that exit before the deferred cleanup runs.
func shutdownDeps(stop context.CancelFunc, dbConn *sql.DB, logger *slog.Logger) {
	stop()
	if err := dbConn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
	}
}
