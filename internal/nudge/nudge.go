// Package nudge finds habits whose streak is about to lapse and sends a
// reminder before the current period closes.
package nudge

import (
	"context"
	"time"

	"github.com/mhout/cadence/internal/logger"
	"github.com/mhout/cadence/pkg/habit"
)

// ExpiringWithin returns the names of active habits that have not been
// checked off in the current period and whose period closes within window.
func ExpiringWithin(ctx context.Context, q Querier, window time.Duration, now time.Time) ([]string, error) {
	habits, err := q.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	var expiring []string
	for _, h := range habits {
		summary, err := q.GetHabitSummary(ctx, h.Name)
		if err != nil {
			return nil, err
		}
		if !summary.IsActive || summary.LastWrite == 0 {
			continue
		}

		done, err := habit.SamePeriod(h.Periodicity, time.Unix(summary.LastWrite, 0), now)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}

		deadline, err := habit.PeriodEnd(h.Periodicity, now)
		if err != nil {
			return nil, err
		}
		if deadline.Sub(now) <= window {
			expiring = append(expiring, h.Name)
		}
	}
	return expiring, nil
}

// Run performs one nudge pass: query, filter, notify. A pass with nothing
// expiring sends no email.
func Run(ctx context.Context, q Querier, n Notifier, window time.Duration) error {
	expiring, err := ExpiringWithin(ctx, q, window, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(expiring) == 0 {
		logger.Info("No habit streaks expiring", "window", window)
		return nil
	}
	logger.Info("Sending nudge", "habits", expiring, "window", window)
	return n.SendNudge(expiring)
}
