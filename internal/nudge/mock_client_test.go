package nudge

import (
	"context"
	"fmt"

	"github.com/mhout/cadence/pkg/habit"
)

type mockClient struct {
	habits    []habit.Habit
	summaries map[string]*habit.Summary
}

func (m *mockClient) ListHabits(_ context.Context) ([]habit.Habit, error) {
	return m.habits, nil
}

func (m *mockClient) GetHabitSummary(_ context.Context, name string) (*habit.Summary, error) {
	s, ok := m.summaries[name]
	if !ok {
		return nil, fmt.Errorf("no summary for %s", name)
	}
	return s, nil
}

var _ Querier = (*mockClient)(nil)
