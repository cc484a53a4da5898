package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
)

// Job is a unit of scheduled background work.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler runs jobs on cron schedules. Specs use the six-field form
// with a leading seconds field, e.g. "0 */5 * * * *" for every five
// minutes.
type Scheduler struct {
	cron   *cron.Cron
	logger *common.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *common.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// Add registers a job on the given cron spec.
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job.Run(context.Background()); err != nil {
			s.logger.Error().Err(err).Str("job", job.Name()).Msg("Scheduled job failed")
			return
		}
		s.logger.Debug().Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("Scheduled job complete")
	})
	return err
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// alertEvaluationJob runs one alert evaluation batch.
type alertEvaluationJob struct {
	service interfaces.AlertService
}

func (j *alertEvaluationJob) Name() string { return "alert-evaluation" }

func (j *alertEvaluationJob) Run(ctx context.Context) error {
	_, err := j.service.EvaluateAll(ctx)
	return err
}
