package nudge

import (
	"context"

	"github.com/mhout/cadence/pkg/habit"
)

type Querier interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	GetHabitSummary(ctx context.Context, name string) (*habit.Summary, error)
}
