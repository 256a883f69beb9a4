// Package jobs runs scheduled roster maintenance: a periodic
// completion-percentage refresh against the current registry, and a scan
// that logs employees entering the salary-increment alert window.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"simpeg/internal/domain/roster"
)

type Service struct {
	Roster *roster.Service
	cron   *cron.Cron
}

func New(rosterSvc *roster.Service) *Service {
	return &Service{Roster: rosterSvc, cron: cron.New()}
}

// Start schedules the maintenance jobs and stops the scheduler when the
// context is cancelled.
func (s *Service) Start(ctx context.Context, spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.RunMaintenance(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()

	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	return nil
}

// RunMaintenance executes one maintenance pass; the scheduler calls it
// on the configured cron spec and startup may call it directly.
func (s *Service) RunMaintenance(ctx context.Context) {
	started := time.Now()

	changed, err := s.Roster.RefreshCompletion(ctx)
	if err != nil {
		slog.Warn("completion refresh failed", "err", err)
	} else {
		slog.Info("completion refresh finished", "updated", changed, "durationMs", time.Since(started).Milliseconds())
	}

	due := s.Roster.DueIncrements(time.Now())
	for _, row := range due {
		slog.Info("periodic increment due",
			"employeeId", row.ID,
			"name", row.Name,
			"nextIncrementDate", row.NextIncrementDate,
		)
	}
	if len(due) > 0 {
		slog.Info("increment scan finished", "due", len(due))
	}
}
