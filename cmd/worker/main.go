package main

import (
	"context"
	"nest/config"
	"nest/di"
	"nest/shared/logger"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const stopTimeout = 30 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	if cfg.Scheduler.Enable {
		if err := worker.Scheduler.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	} else {
		log.Info().Msg("Scheduler disabled")
	}

	group.Go(func() error {
		return worker.Consumer.Consume(ctx)
	})

	<-ctx.Done()
	log.Info().Msg("Shutting down worker")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if cfg.Scheduler.Enable {
		worker.Scheduler.Stop(stopCtx)
	}

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
	}

	if err := worker.Close(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to release worker resources")
	}

	log.Info().Msg("Worker stopped")
}
