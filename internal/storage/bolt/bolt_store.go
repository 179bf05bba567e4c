package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mhout/cadence/internal/storage"
	"github.com/mhout/cadence/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	habitsBucket  = "habits"
	entriesBucket = "entries"
	apiKeysBucket = "apikeys"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{habitsBucket, entriesBucket, apiKeysBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateHabit(h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(habitsBucket))
		val, _ := json.Marshal(h)
		return bucket.Put([]byte(h.Name), val)
	})
}

func (s *Store) GetHabit(name string) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket([]byte(habitsBucket)).Get([]byte(name))
		if val == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(val, &h)
	})
	return h, err
}

func (s *Store) ListHabits() ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(habitsBucket)).ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteHabit(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(habitsBucket)).Get([]byte(name)) == nil {
			return storage.ErrNotFound
		}
		if err := tx.Bucket([]byte(habitsBucket)).Delete([]byte(name)); err != nil {
			return err
		}
		entries := tx.Bucket([]byte(entriesBucket))
		if entries.Bucket([]byte(name)) != nil {
			return entries.DeleteBucket([]byte(name))
		}
		return nil
	})
}

// entryKey orders entries chronologically within a habit's bucket. RFC3339
// in UTC sorts lexicographically in time order.
func entryKey(e habit.Entry) []byte {
	return fmt.Appendf(nil, "%s/%s", e.Time.UTC().Format(time.RFC3339), e.Kind)
}

func (s *Store) AppendEntry(e habit.Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(habitsBucket)).Get([]byte(e.Habit)) == nil {
			return storage.ErrNotFound
		}
		bucket, err := tx.Bucket([]byte(entriesBucket)).CreateBucketIfNotExists([]byte(e.Habit))
		if err != nil {
			return err
		}
		val, _ := json.Marshal(e)
		return bucket.Put(entryKey(e), val)
	})
}

func (s *Store) ListEntries(name string) ([]habit.Entry, error) {
	out := []habit.Entry{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(habitsBucket)).Get([]byte(name)) == nil {
			return storage.ErrNotFound
		}
		bucket := tx.Bucket([]byte(entriesBucket)).Bucket([]byte(name))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var e habit.Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) PutAPIKey(hash, label string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Put([]byte(hash), []byte(label))
	})
}

func (s *Store) GetAPIKey(hash string) (string, bool, error) {
	var label string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		if val := tx.Bucket([]byte(apiKeysBucket)).Get([]byte(hash)); val != nil {
			label = string(val)
			found = true
		}
		return nil
	})
	return label, found, err
}

func (s *Store) DeleteAPIKey(hash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Delete([]byte(hash))
	})
}

var _ storage.Store = (*Store)(nil)
