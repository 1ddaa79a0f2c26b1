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

	"github.com/groovesync/server/internal/controller"
	conninmemory "github.com/groovesync/server/internal/repository/conn/inmemory"
	roomredis "github.com/groovesync/server/internal/repository/room/redis"
	"github.com/groovesync/server/internal/service/media"
	"github.com/groovesync/server/internal/service/relay"
	"github.com/groovesync/server/pkg/ctxlogger"
	"github.com/groovesync/server/pkg/redisclient"
)

type AppConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	LogLevel        string `json:"log_level"`
	MusicPath       string `json:"music_path"`
	ContentType     string `json:"content_type"`
	StreamChunkSize int64  `json:"stream_chunk_size"`
	PlayerURL       string `json:"player_url"`
	RedisHost       string `json:"redis_host"`
	RedisPort       int    `json:"redis_port"`
	RedisPassword   string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.MusicPath == "" {
		return fmt.Errorf("music path must be set")
	}
	if cfg.StreamChunkSize < 1 {
		return fmt.Errorf("stream chunk size must be greater than 0")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}),
	}

	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	roomRepo := roomredis.NewRepo(rc, 24*time.Hour, logger)
	connRepo := conninmemory.NewRepo(logger)
	relayService := relay.NewService(roomRepo, connRepo, logger)
	mediaService := media.NewService(&media.Config{
		Path:        cfg.MusicPath,
		ContentType: cfg.ContentType,
		ChunkSize:   cfg.StreamChunkSize,
	}, logger)
	controller := controller.NewController(relayService, mediaService, &controller.Config{
		PlayerURL: cfg.PlayerURL,
	}, logger)

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

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
