package server

import (
	"github.com/mhout/cadence/pkg/habit"
)

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type HabitGetResponse struct {
	HabitID string        `json:"habit_id"`
	Entries []habit.Entry `json:"entries"`
}

type HabitSummaryResponse struct {
	HabitID string        `json:"habit_id"`
	Summary habit.Summary `json:"summary"`
}

type AnalyticsResponse struct {
	Habits []habit.Summary `json:"habits"`
}

type PeriodicityGroupsResponse struct {
	Groups map[habit.Periodicity][]habit.Summary `json:"groups"`
}
