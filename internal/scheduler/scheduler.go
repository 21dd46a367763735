package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-backoffice/internal/leave"
)

const (
	// Runs shortly after midnight UTC so leaves ending yesterday are swept
	// before the workday starts.
	defaultSpec = "10 0 * * *"

	sweepBatchSize = 500
	sweepTimeout   = 5 * time.Minute
)

// Scheduler owns the periodic jobs of the service. The only job today is the
// completion sweep: active leaves whose end date has passed become completed.
type Scheduler struct {
	cron   *cron.Cron
	leaves leave.Service
	logger *zap.Logger
}

func New(leaves leave.Service, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler")
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		leaves: leaves,
		logger: l,
	}
}

// Start registers the jobs and starts the cron loop. spec overrides the
// default schedule when non-empty.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = defaultSpec
	}
	if _, err := s.cron.AddFunc(spec, s.runCompletionSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", spec))
	return nil
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runCompletionSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := s.leaves.CompleteElapsed(ctx, time.Now().UTC(), sweepBatchSize)
	if err != nil {
		s.logger.Error("completion sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("completion sweep finished", zap.Int("completed", count))
		return
	}
	s.logger.Debug("completion sweep found nothing to do")
}
