package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	app "github.com/powerex/intraday/internal/app/engine"
	"github.com/powerex/intraday/internal/usecase/orderbook"
	"github.com/powerex/intraday/pkg/config"
	"github.com/powerex/intraday/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)),
	)
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	defer func() {
		_ = log.Sync()
	}()

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling so an interrupt cancels the running session
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize components
	head := orderbook.NewHead(log)
	engine := app.NewEngine(head, log, cfg)

	done := make(chan error, 1)
	go func() {
		done <- engine.Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "run_session",
			})
			return
		}
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.Field{
			Key:   "signal",
			Value: sig.String(),
		})
		cancel()
		<-done
		return
	}

	log.Info("Simulator session complete", logger.Field{
		Key:   "app",
		Value: cfg.App.Name,
	})
}
