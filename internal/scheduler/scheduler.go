// Package scheduler периодически запускает охоту через robfig/cron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
	"flathunter-service/internal/core/port/usecases_port"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает охоту раз в interval и один раз сразу после старта.
// Тик пропускается, пока предыдущий запуск не закончился
type Scheduler struct {
	cron       *cron.Cron
	cronLogger cron.Logger
	hunt       usecases_port.HuntFlatsPort
	logger     port.LoggerPort
	spec       string
	maxPages   int

	job    cron.Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(hunt usecases_port.HuntFlatsPort, interval time.Duration, maxPages int, logger port.LoggerPort, cronLogger cron.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %s", interval)
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cronLogger)),
		cronLogger: cronLogger,
		hunt:       hunt,
		logger:     logger.WithFields(port.Fields{"component": "Scheduler"}),
		spec:       fmt.Sprintf("@every %s", interval),
		maxPages:   maxPages,
	}, nil
}

// Start регистрирует задачу и сразу выполняет первый запуск в фоне
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	skipper := cron.SkipIfStillRunning(s.cronLogger)
	s.job = cron.NewChain(skipper).Then(cron.FuncJob(func() { s.runHunt(ctx) }))

	if _, err := s.cron.AddJob(s.spec, s.job); err != nil {
		s.cancel()
		return fmt.Errorf("cron.AddJob: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Cron started", port.Fields{"spec": s.spec})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.job.Run()
	}()
	return nil
}

// Stop отменяет текущий запуск и ждет его завершения
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("Cron stopped", nil)
}

func (s *Scheduler) runHunt(ctx context.Context) {
	ctx = contextkeys.ContextWithLogger(ctx, s.logger)
	startedAt := time.Now()

	exposes, err := s.hunt.Execute(ctx, s.maxPages)
	switch {
	case errors.Is(err, domain.ErrHuntInProgress):
		s.logger.Info("Hunt is already running, tick skipped", nil)
	case err != nil:
		s.logger.Error("Hunt failed", err, port.Fields{"new_offers": len(exposes)})
	default:
		s.logger.Info("Hunt cycle complete", port.Fields{
			"new_offers":  len(exposes),
			"duration_ms": time.Since(startedAt).Milliseconds(),
		})
	}
}
