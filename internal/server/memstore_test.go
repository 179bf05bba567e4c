package server

import (
	"slices"
	"sync"

	"github.com/mhout/cadence/internal/storage"
	"github.com/mhout/cadence/pkg/habit"
)

type memStore struct {
	mu      sync.RWMutex
	habits  map[string]habit.Habit
	entries map[string][]habit.Entry
	keys    map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		habits:  map[string]habit.Habit{},
		entries: map[string][]habit.Entry{},
		keys:    map[string]string{},
	}
}

func (m *memStore) CreateHabit(h habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.habits[h.Name] = h
	return nil
}

func (m *memStore) GetHabit(name string) (habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.habits[name]
	if !ok {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (m *memStore) ListHabits() ([]habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []habit.Habit{}
	for _, h := range m.habits {
		out = append(out, h)
	}
	return out, nil
}

func (m *memStore) DeleteHabit(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[name]; !ok {
		return storage.ErrNotFound
	}
	delete(m.habits, name)
	delete(m.entries, name)
	return nil
}

func (m *memStore) AppendEntry(e habit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[e.Habit]; !ok {
		return storage.ErrNotFound
	}
	m.entries[e.Habit] = append(m.entries[e.Habit], e)
	slices.SortFunc(m.entries[e.Habit], func(a, b habit.Entry) int {
		return a.Time.Compare(b.Time)
	})
	return nil
}

func (m *memStore) ListEntries(name string) ([]habit.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.habits[name]; !ok {
		return nil, storage.ErrNotFound
	}
	return append([]habit.Entry(nil), m.entries[name]...), nil
}

func (m *memStore) PutAPIKey(hash, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[hash] = label
	return nil
}

func (m *memStore) GetAPIKey(hash string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	label, ok := m.keys[hash]
	return label, ok, nil
}

func (m *memStore) DeleteAPIKey(hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, hash)
	return nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
