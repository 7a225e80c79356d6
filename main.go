package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/config"
	"github.com/Zachkp/diary/internal/content"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/logging"
)

func main() {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Mode)

	logger, err := logging.New(cfg.LogLevel, gin.IsDebugging())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := content.Load(os.DirFS(cfg.DataDir), logger.Named("content"))
	if err != nil {
		return err
	}

	preloader := frames.NewPreloader(os.DirFS(sequenceDir(cfg)),
		frames.WithWorkers(cfg.PreloadWorkers),
		frames.WithLogger(logger.Named("frames")),
	)
	go preloader.Preload(ctx)

	s := &server{cfg: cfg, catalog: catalog, preloader: preloader, logger: logger}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("mode", cfg.Mode))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
