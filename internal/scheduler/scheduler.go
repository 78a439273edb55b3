package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Mounter is the screen pipeline's mount entry point.
type Mounter interface {
	Mount(ctx context.Context) bool
}

// Scheduler runs the screen mount as a one-shot job as soon as the
// scheduler starts, so serving does not wait for the first cycle. It never
// schedules repeated fetches.
type Scheduler struct {
	scheduler *gocron.Scheduler
	screen    Mounter
	log       *zap.SugaredLogger
}

// New creates a new Scheduler.
func New(screen Mounter, log *zap.SugaredLogger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		screen:    screen,
		log:       log,
	}
}

// Start schedules the mount job and starts the underlying scheduler. ctx
// becomes the lifetime of the screen.
//
// Start returns without waiting for Mount: the HTTP listener comes up while
// the first cycle is still asking for permission, and GET /api/v1/screen
// reports Loading until it finishes. A prompt gate can block for as long as
// the operator takes to answer.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(1).Day().StartImmediately().LimitRunsTo(1).Do(func() {
		if s.screen.Mount(ctx) {
			s.log.Infow("scheduler: screen mounted")
		} else {
			s.log.Debugw("scheduler: screen already mounted")
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
