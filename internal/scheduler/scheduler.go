// Package scheduler runs the reminder sweep on an in-process cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/service"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron    *cron.Cron
	sweep   service.ISweepService
	timeout time.Duration
	logger  logger.ILogger
}

// New registers the sweep under spec. An empty spec yields a scheduler that
// never fires.
func New(spec string, sweep service.ISweepService, timeout time.Duration, log logger.ILogger) (*Scheduler, error) {
	if timeout <= 0 {
		timeout = time.Minute
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweep:   sweep,
		timeout: timeout,
		logger:  log,
	}
	if spec == "" {
		return s, nil
	}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	s.logger.Info("Scheduler", "Reminder sweep scheduled", map[string]interface{}{"spec": spec})
	return s, nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.sweep.Run(ctx, time.Now()); err != nil {
		s.logger.Error("Scheduler", "Scheduled sweep failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
