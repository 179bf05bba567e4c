package habit

import (
	"fmt"
	"slices"
	"time"
)

const daySec int64 = 24 * 60 * 60

// bucketKey maps a timestamp to its period bucket. Keys are chosen so that
// consecutive buckets always differ by exactly 1: the UTC day index for
// daily, the index of the ISO week's Monday for weekly, and year*12+month
// for monthly.
func bucketKey(p Periodicity, t time.Time) (int64, error) {
	u := t.UTC()
	switch p {
	case Daily:
		return u.Truncate(24*time.Hour).Unix() / daySec, nil
	case Weekly:
		// ISO-8601: weeks run Monday through Sunday.
		wd := int(u.Weekday())
		if wd == 0 {
			wd = 7
		}
		monday := u.Truncate(24*time.Hour).Unix()/daySec - int64(wd-1)
		return monday / 7, nil
	case Monthly:
		return int64(u.Year())*12 + int64(u.Month()) - 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPeriodicity, p)
}

// distinctBuckets returns the sorted, deduplicated bucket keys for the given
// timestamps. The input slice is never modified.
func distinctBuckets(p Periodicity, times []time.Time) ([]int64, error) {
	uniq := make(map[int64]struct{}, len(times))
	for _, t := range times {
		if t.IsZero() {
			return nil, fmt.Errorf("%w: zero time", ErrInvalidTimestamp)
		}
		key, err := bucketKey(p, t)
		if err != nil {
			return nil, err
		}
		uniq[key] = struct{}{}
	}
	keys := make([]int64, 0, len(uniq))
	for k := range uniq {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// ComputeStats derives streak statistics from a set of check-off timestamps.
// The timestamps may be unsorted and may contain several check-offs in the
// same period; each period counts once. ref is the "now" that currency is
// judged against: the final run of consecutive buckets counts as the current
// streak only if it reaches ref's bucket or the one immediately before it.
//
// The function is pure: it reads no clock and leaves its inputs untouched.
func ComputeStats(p Periodicity, times []time.Time, ref time.Time) (Stats, error) {
	refKey, err := bucketKey(p, ref)
	if err != nil {
		return Stats{}, err
	}
	keys, err := distinctBuckets(p, times)
	if err != nil {
		return Stats{}, err
	}
	if len(keys) == 0 {
		return Stats{}, nil
	}

	var stats Stats
	run := 1
	for i := 1; i < len(keys); i++ {
		if keys[i]-keys[i-1] == 1 {
			run++
			continue
		}
		stats.BreakCount++
		stats.LongestStreak = max(stats.LongestStreak, run)
		run = 1
	}
	stats.LongestStreak = max(stats.LongestStreak, run)

	// The habit is live if its latest bucket is the ref bucket or the one
	// before it; anything older means the streak has lapsed.
	if last := keys[len(keys)-1]; last == refKey || last == refKey-1 {
		stats.CurrentStreak = run
		stats.IsActive = true
	}
	return stats, nil
}

// BuildSummary assembles the per-habit report the API serves. Longest streak
// and break count cover the habit's full history; the current streak only
// counts check-offs at or after the most recent restart, so restarting a
// habit zeroes the running streak without losing history.
func BuildSummary(h Habit, entries []Entry, ref time.Time) (Summary, error) {
	var checkoffs []time.Time
	var lastRestart, lastWrite time.Time
	for _, e := range entries {
		if e.Time.After(lastWrite) {
			lastWrite = e.Time
		}
		switch e.Kind {
		case KindCheckOff:
			checkoffs = append(checkoffs, e.Time)
		case KindRestart:
			if e.Time.After(lastRestart) {
				lastRestart = e.Time
			}
		}
	}

	all, err := ComputeStats(h.Periodicity, checkoffs, ref)
	if err != nil {
		return Summary{}, err
	}

	current := all
	if !lastRestart.IsZero() {
		var recent []time.Time
		for _, t := range checkoffs {
			if !t.Before(lastRestart) {
				recent = append(recent, t)
			}
		}
		current, err = ComputeStats(h.Periodicity, recent, ref)
		if err != nil {
			return Summary{}, err
		}
	}

	buckets, err := distinctBuckets(h.Periodicity, checkoffs)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Name:          h.Name,
		Periodicity:   h.Periodicity,
		CurrentStreak: current.CurrentStreak,
		LongestStreak: all.LongestStreak,
		BreakCount:    all.BreakCount,
		IsActive:      current.IsActive,
		TotalPeriods:  len(buckets),
	}
	if len(checkoffs) > 0 {
		first := checkoffs[0]
		for _, t := range checkoffs[1:] {
			if t.Before(first) {
				first = t
			}
		}
		s.FirstLogged = first.Unix()
	}
	if !lastWrite.IsZero() {
		s.LastWrite = lastWrite.Unix()
	}
	return s, nil
}

// SamePeriod reports whether two timestamps fall in the same bucket.
func SamePeriod(p Periodicity, a, b time.Time) (bool, error) {
	ka, err := bucketKey(p, a)
	if err != nil {
		return false, err
	}
	kb, err := bucketKey(p, b)
	if err != nil {
		return false, err
	}
	return ka == kb, nil
}

// PeriodEnd returns the instant the bucket containing t closes, i.e. the
// deadline for checking off before the streak lapses.
func PeriodEnd(p Periodicity, t time.Time) (time.Time, error) {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case Daily:
		return midnight.AddDate(0, 0, 1), nil
	case Weekly:
		wd := int(u.Weekday())
		if wd == 0 {
			wd = 7
		}
		return midnight.AddDate(0, 0, 8-wd), nil
	case Monthly:
		return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriodicity, p)
}
