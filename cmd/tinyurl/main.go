package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m-molecula741/tinyurl/internal/app/client"
	"github.com/m-molecula741/tinyurl/internal/app/config"
	"github.com/m-molecula741/tinyurl/internal/app/controller"
	"github.com/m-molecula741/tinyurl/internal/app/logger"
	"github.com/m-molecula741/tinyurl/internal/app/middleware"
	"github.com/m-molecula741/tinyurl/internal/app/storage"
)

const (
	shutdownTimeout = 5 * time.Second
	pruneInterval   = time.Minute
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Сервер завершился с ошибкой")
	}
}

func run(args []string, logOut io.Writer) error {
	// ошибки конфигурации пишутся логгером с уровнем по умолчанию
	_ = logger.InitWithWriter(logOut, "info")

	cfg, err := config.Load("tinyurl", args)
	if err != nil {
		return err
	}

	if err := logger.InitWithWriter(logOut, cfg.LogLevel); err != nil {
		logger.Warn().Str("level", cfg.LogLevel).Msg("Неизвестный уровень логирования, используется info")
	}
	logger.Info().Str("api_base", cfg.APIBase).Msg("Адрес сервиса сокращения")

	shortener := client.NewClient(cfg.APIBase)
	sessions := storage.NewInMemorySessionStorage(shortener)

	session, err := middleware.NewSessionMiddleware(cfg.SessionKey, cfg.SessionTTL)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           controller.NewHTTPController(sessions, session, cfg.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("address", cfg.ServerAddress).Msg("Сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sessions.RunPruner(gctx, pruneInterval, cfg.SessionTTL)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Сервер останавливается...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().Msg("Сервер остановлен")
	return nil
}
