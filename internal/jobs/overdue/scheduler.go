package overdue

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает Job по расписанию cron (с секундами, UTC)
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler регистрирует задачу по выражению spec, например "0 */15 * * * *"
func NewScheduler(spec string, job *Job, logger Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(spec, job.Run); err != nil {
		return nil, fmt.Errorf("register overdue sweep %q: %w", spec, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Overdue sweep scheduler started")
}

// Stop останавливает планировщик и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Overdue sweep scheduler stopped")
}
