package storage

import (
	"errors"

	"github.com/mhout/cadence/pkg/habit"
)

// ErrNotFound is returned when a habit does not exist in the store.
var ErrNotFound = errors.New("habit not found")

// Store is the persistence boundary. Entries returned by ListEntries are
// ordered ascending by time.
type Store interface {
	CreateHabit(h habit.Habit) error
	GetHabit(name string) (habit.Habit, error)
	ListHabits() ([]habit.Habit, error)
	DeleteHabit(name string) error

	AppendEntry(e habit.Entry) error
	ListEntries(name string) ([]habit.Entry, error)

	PutAPIKey(hash, label string) error
	GetAPIKey(hash string) (label string, found bool, err error)
	DeleteAPIKey(hash string) error

	Close() error
}
