package habit

import (
	"errors"
	"fmt"
	"time"
)

// MaxNameLength bounds habit names to fit the habits table schema.
const MaxNameLength = 32

var (
	ErrInvalidPeriodicity = errors.New("invalid periodicity")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
)

// Periodicity is the cadence a habit must be checked off at: one check-off
// per calendar day, per ISO-8601 week, or per calendar month.
type Periodicity string

const (
	Daily   Periodicity = "daily"
	Weekly  Periodicity = "weekly"
	Monthly Periodicity = "monthly"
)

func ParsePeriodicity(s string) (Periodicity, error) {
	switch Periodicity(s) {
	case Daily, Weekly, Monthly:
		return Periodicity(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriodicity, s)
}

func (p Periodicity) Valid() bool {
	_, err := ParsePeriodicity(string(p))
	return err == nil
}

type Habit struct {
	Name        string      `json:"name"`
	Periodicity Periodicity `json:"periodicity"`
	StartDate   time.Time   `json:"start_date"`
}

func (h Habit) Validate() error {
	if len(h.Name) == 0 || len(h.Name) > MaxNameLength {
		return fmt.Errorf("bad habit name: must be 1-%d characters", MaxNameLength)
	}
	if !h.Periodicity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriodicity, h.Periodicity)
	}
	return nil
}

// EntryKind distinguishes log rows. A check-off marks one completion; a
// restart resets the running streak without discarding history.
type EntryKind string

const (
	KindCheckOff EntryKind = "checkoff"
	KindRestart  EntryKind = "restart"
)

type Entry struct {
	Habit string    `json:"habit"`
	Time  time.Time `json:"time"`
	Kind  EntryKind `json:"kind"`
}

// Stats is the output of the streak analyzer.
type Stats struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	BreakCount    int  `json:"break_count"`
	IsActive      bool `json:"is_active"`
}

// Summary is what the API and the analytics views report per habit.
type Summary struct {
	Name          string      `json:"name"`
	Periodicity   Periodicity `json:"periodicity"`
	CurrentStreak int         `json:"current_streak"`
	LongestStreak int         `json:"longest_streak"`
	BreakCount    int         `json:"break_count"`
	IsActive      bool        `json:"is_active"`
	FirstLogged   int64       `json:"first_logged"`
	TotalPeriods  int         `json:"total_periods"`
	LastWrite     int64       `json:"last_write"`
}
