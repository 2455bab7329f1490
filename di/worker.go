package di

import (
	"context"
	"errors"
	"fmt"
	"nest/infras/kafka"
	"nest/infras/otel"
	"nest/internal/handlers/event"
	"nest/internal/scheduler"
)

// Worker bundles the background processes run by cmd/worker.
type Worker struct {
	Scheduler *scheduler.Scheduler
	Consumer  event.Handler

	kafka kafka.Client
	otel  otel.Otel
}

func NewWorker(scheduler *scheduler.Scheduler, consumer event.Handler, kafka kafka.Client, otel otel.Otel) *Worker {
	return &Worker{
		Scheduler: scheduler,
		Consumer:  consumer,
		kafka:     kafka,
		otel:      otel,
	}
}

// Close flushes the Kafka writers and the trace exporter.
func (w *Worker) Close(ctx context.Context) error {
	var errs []error

	if err := w.kafka.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing kafka client: %w", err))
	}

	if err := w.otel.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down otel: %w", err))
	}

	return errors.Join(errs...)
}
