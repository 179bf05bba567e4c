package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mhout/cadence/internal/storage"
	"github.com/mhout/cadence/pkg/habit"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	name        TEXT PRIMARY KEY CHECK(length(name) <= 32),
	periodicity TEXT NOT NULL,
	start_date  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS log (
	habit_name TEXT NOT NULL,
	time       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	PRIMARY KEY(habit_name, time, kind),
	FOREIGN KEY(habit_name) REFERENCES habits(name)
);
CREATE TABLE IF NOT EXISTS api_keys (
	hash       TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateHabit(h habit.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (name, periodicity, start_date) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET periodicity = excluded.periodicity`,
		h.Name, string(h.Periodicity), h.StartDate.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetHabit(name string) (habit.Habit, error) {
	row := s.db.QueryRow(
		`SELECT name, periodicity, start_date FROM habits WHERE name = ?`, name)

	var h habit.Habit
	var periodicity, startDate string
	err := row.Scan(&h.Name, &periodicity, &startDate)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, storage.ErrNotFound
	}
	if err != nil {
		return habit.Habit{}, err
	}
	h.Periodicity = habit.Periodicity(periodicity)
	h.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return habit.Habit{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	return h, nil
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	rows, err := s.db.Query(
		`SELECT name, periodicity, start_date FROM habits ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		var h habit.Habit
		var periodicity, startDate string
		if err := rows.Scan(&h.Name, &periodicity, &startDate); err != nil {
			return nil, err
		}
		h.Periodicity = habit.Periodicity(periodicity)
		h.StartDate, err = time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_date: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) DeleteHabit(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM habits WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	if _, err := tx.Exec(`DELETE FROM log WHERE habit_name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) AppendEntry(e habit.Entry) error {
	if _, err := s.GetHabit(e.Habit); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO log (habit_name, time, kind) VALUES (?, ?, ?)`,
		e.Habit, e.Time.UTC().Format(time.RFC3339), string(e.Kind))
	return err
}

func (s *Store) ListEntries(name string) ([]habit.Entry, error) {
	if _, err := s.GetHabit(name); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT habit_name, time, kind FROM log WHERE habit_name = ? ORDER BY time ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []habit.Entry{}
	for rows.Next() {
		var e habit.Entry
		var ts, kind string
		if err := rows.Scan(&e.Habit, &ts, &kind); err != nil {
			return nil, err
		}
		e.Time, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log time: %w", err)
		}
		e.Kind = habit.EntryKind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) PutAPIKey(hash, label string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO api_keys (hash, label, created_at) VALUES (?, ?, ?)`,
		hash, label, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetAPIKey(hash string) (string, bool, error) {
	row := s.db.QueryRow(`SELECT label FROM api_keys WHERE hash = ?`, hash)
	var label string
	err := row.Scan(&label)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return label, true, nil
}

func (s *Store) DeleteAPIKey(hash string) error {
	_, err := s.db.Exec(`DELETE FROM api_keys WHERE hash = ?`, hash)
	return err
}

var _ storage.Store = (*Store)(nil)
