package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/controller"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/dispatcher"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/membership"
	registryInmemory "github.com/Sumit-Saurabh98/SyncWatch/internal/registry/inmemory"
	messagePostgres "github.com/Sumit-Saurabh98/SyncWatch/internal/repository/message/postgres"
	roomRedis "github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room/redis"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/service/session"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/ctxlogger"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/redisclient"
)

type AppConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	LogLevel      string `json:"log_level"`
	MembersLimit  int    `json:"members_limit"`
	HistoryLimit  int    `json:"history_limit"`
	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"-"`
	PostgresDSN   string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.MembersLimit < 1 {
		return fmt.Errorf("members limit must be greater than 0")
	}
	if cfg.HistoryLimit < 0 {
		return fmt.Errorf("history limit must not be negative")
	}
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("postgres dsn is required")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}),
	}
	logger := slog.New(h)

	rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to create postgres pool: %w", err)
	}
	defer pool.Close()

	roomRepo := roomRedis.NewRepo(rc, 24*14*time.Hour, logger)
	messageRepo := messagePostgres.NewRepo(pool, logger)
	connRegistry := registryInmemory.NewRepo(logger)
	memberTable := membership.NewTable()
	roomDispatcher := dispatcher.New(memberTable, connRegistry, logger)

	sessionService := session.NewService(
		connRegistry,
		memberTable,
		roomDispatcher,
		roomRepo,
		messageRepo,
		&session.Config{
			MembersLimit: cfg.MembersLimit,
			HistoryLimit: cfg.HistoryLimit,
		},
		logger,
	)

	ctrl := controller.NewController(sessionService, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: ctrl.Mux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
