package scheduler

import (
	"context"
	"fmt"
	"nest/config"
	"nest/infras/otel"
	"nest/internal/domains/appointment/service"
	"nest/shared/constant"
	"nest/shared/timezone"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const jobTimeout = time.Minute

type Scheduler struct {
	cron        *cron.Cron
	cfg         *config.Config
	appointment service.Appointment
	otel        otel.Otel
}

func New(cfg *config.Config, appointment service.Appointment, otel otel.Otel) *Scheduler {
	logger := log.Logger.With().Str("component", "scheduler").Logger()
	cronLogger := cron.PrintfLogger(&logger)

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(timezone.GetLocation()),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		cfg:         cfg,
		appointment: appointment,
		otel:        otel,
	}
}

// Start registers the jobs and runs them until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.ExpireSpec, func() { s.expirePending(ctx) }); err != nil {
		return fmt.Errorf("invalid expire schedule %q: %w", s.cfg.Scheduler.ExpireSpec, err)
	}

	s.cron.Start()
	log.Info().Str("spec", s.cfg.Scheduler.ExpireSpec).Msg("Scheduler started")

	return nil
}

// Stop prevents new runs and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) expirePending(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".ExpirePending")
	defer scope.End()

	affected, err := s.appointment.ExpirePending(ctx, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to expire pending appointments")

		return
	}

	if affected > 0 {
		log.Info().Int64("expired", affected).Msg("Expired pending appointments")
	}
}
