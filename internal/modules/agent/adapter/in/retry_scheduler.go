package in

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	"timetrack/internal/modules/agent/domain"
	agentin "timetrack/internal/modules/agent/port/in"
)

// RetryScheduler periodically asks the runtime to re-attempt unsaved sessions.
type RetryScheduler struct {
	scheduler gocron.Scheduler
	log       logrus.FieldLogger
}

func NewRetryScheduler(commander agentin.Commander, interval time.Duration, log logrus.FieldLogger) (*RetryScheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	log = log.WithField("job", "retry-pending")
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if !commander.Send(domain.RetryPending{}) {
				log.Debug("runtime stopped, retry skipped")
			}
		}),
		gocron.WithName("retry-pending"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("schedule retry job: %w", err)
	}
	return &RetryScheduler{scheduler: scheduler, log: log}, nil
}

func (s *RetryScheduler) Start() {
	s.scheduler.Start()
	s.log.Debug("retry scheduler started")
}

func (s *RetryScheduler) Shutdown() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
