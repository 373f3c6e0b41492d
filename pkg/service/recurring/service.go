// Package recurring reminds users about recurring transactions that are
// coming due or were missed.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/amirasaad/finance-tracker/pkg/service/budget"
)

// Window is how far ahead a due date counts as upcoming and how far back it
// must be to count as missed.
const Window = 24 * time.Hour

type Service struct {
	uow      repository.UnitOfWork
	notifier budget.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func New(uow repository.UnitOfWork, notifier budget.Notifier, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		notifier: notifier,
		logger:   logger.With("service", "recurring"),
		now:      time.Now,
	}
}

// Result counts the reminders raised by one Check.
type Result struct {
	Upcoming int
	Missed   int
}

// Check raises a recurrence_alert for every recurring transaction due in
// [now, now+Window] and a missed_payment for every one due before
// now-Window.
func (s *Service) Check(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return res, err
	}
	upcoming := now.Add(Window)
	missed := now.Add(-Window)

	// The upper bound is inclusive.
	txs, err := repo.ListRecurringDueBefore(ctx, upcoming.Add(time.Nanosecond))
	if err != nil {
		s.logger.Error("Error checking recurring transactions", "error", err)
		return res, err
	}

	for _, tx := range txs {
		due := *tx.NextDueDate
		switch {
		case !due.Before(now):
			s.notifier.Notify(ctx, tx.UserID, domain.NotificationRecurrenceAlert,
				fmt.Sprintf("Reminder: Your %s transaction of %s %s is due soon.",
					tx.Category, tx.Amount.StringFixed(2), tx.Currency))
			res.Upcoming++
		case due.Before(missed):
			s.notifier.Notify(ctx, tx.UserID, domain.NotificationMissedPayment,
				fmt.Sprintf("Missed Payment Alert: You missed your %s transaction of %s %s.",
					tx.Category, tx.Amount.StringFixed(2), tx.Currency))
			res.Missed++
		}
	}
	s.logger.Info("Recurring transaction check completed",
		"upcoming", res.Upcoming,
		"missed", res.Missed,
	)
	return res, nil
}

// Run calls Check once immediately and then every interval until ctx is
// done. Errors are logged.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.logger.Info("Running scheduled job: checking recurring transactions")
		if _, err := s.Check(ctx, s.now()); err != nil {
			s.logger.Error("Scheduled job failed", "error", err)
		}
		select {
		case <-ctx.Done():
			s.logger.Info("Recurring transaction scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}
