package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mhout/cadence/internal/analytics"
	"github.com/mhout/cadence/internal/logger"
	"github.com/mhout/cadence/internal/storage"
	"github.com/mhout/cadence/pkg/habit"
	"github.com/mhout/cadence/pkg/versioninfo"

	"github.com/go-chi/chi/v5"
)

// Timestamps outside 2000-01-01..2100-01-01 are rejected as malformed.
const (
	minTS = 946684800
	maxTS = 4102444800
)

type createHabitRequest struct {
	Name        string `json:"name"`
	Periodicity string `json:"periodicity"`
	StartDate   string `json:"start_date,omitempty"`
}

type entryRequest struct {
	TimeStamp int64 `json:"timestamp,omitempty"`
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create habit request", "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	p, err := habit.ParsePeriodicity(req.Periodicity)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
		return
	}

	start := s.now().UTC()
	if req.StartDate != "" {
		start, err = time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			http.Error(w, `{"error":"bad start_date: must be RFC3339"}`, http.StatusBadRequest)
			return
		}
	}

	h := habit.Habit{Name: req.Name, Periodicity: p, StartDate: start}
	if err := h.Validate(); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
		return
	}

	logger.Info("Creating habit", "habit_name", h.Name, "periodicity", h.Periodicity)
	if err := s.store.CreateHabit(h); err != nil {
		logger.Error("Failed to create habit", "habit_name", h.Name, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	s.updateActiveHabits()

	if err := writeJSON(w, http.StatusCreated, h); err != nil {
		logger.Error("Failed to serialize create habit response", "habit_name", h.Name, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) listHabits(w http.ResponseWriter, _ *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	logger.Debug("Listed habits", "count", len(habits))
	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: habits}); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	if habitID == "" {
		http.Error(w, `{"error":"habit id is required"}`, http.StatusBadRequest)
		return
	}

	entries, err := s.store.ListEntries(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to get habit entries", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	resp := HabitGetResponse{
		HabitID: habitID,
		Entries: entries,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize get habit response", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Info("Deleting habit", "habit_id", habitID)
	if habitID == "" {
		http.Error(w, `{"error":"habit id is required"}`, http.StatusBadRequest)
		return
	}

	err := s.store.DeleteHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to delete habit", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	logger.Info("Habit deleted successfully", "habit_id", habitID)
	s.updateActiveHabits()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) appendEntry(w http.ResponseWriter, r *http.Request, kind habit.EntryKind) {
	habitID := chi.URLParam(r, "habit_id")
	if habitID == "" {
		http.Error(w, `{"error":"habit id is required"}`, http.StatusBadRequest)
		return
	}

	var req entryRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid JSON in entry request", "habit_id", habitID, "error", err)
			http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
			return
		}
	}

	at := s.now().UTC()
	if req.TimeStamp != 0 {
		if req.TimeStamp < minTS || req.TimeStamp > maxTS {
			http.Error(w, `{"error":"invalid timestamp"}`, http.StatusBadRequest)
			return
		}
		at = time.Unix(req.TimeStamp, 0).UTC()
	}

	e := habit.Entry{Habit: habitID, Time: at, Kind: kind}
	logger.Info("Appending entry", "habit_id", habitID, "kind", kind, "time", at)
	err := s.store.AppendEntry(e)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to append entry", "habit_id", habitID, "kind", kind, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	checkOffsTotal.WithLabelValues(habitID, string(kind)).Inc()

	if err := writeJSON(w, http.StatusCreated, e); err != nil {
		logger.Error("Failed to serialize entry response", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) checkOffHabit(w http.ResponseWriter, r *http.Request) {
	s.appendEntry(w, r, habit.KindCheckOff)
}

func (s *Server) restartHabit(w http.ResponseWriter, r *http.Request) {
	s.appendEntry(w, r, habit.KindRestart)
}

func (s *Server) getHabitSummary(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Debug("Getting habit summary", "habit_id", habitID)
	if habitID == "" {
		http.Error(w, `{"error":"habit id is required"}`, http.StatusBadRequest)
		return
	}

	summary, err := s.summarize(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to compute summary", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"error computing summary"}`, http.StatusInternalServerError)
		return
	}

	resp := HabitSummaryResponse{
		HabitID: habitID,
		Summary: summary,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize habit summary response", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) summarize(habitID string) (habit.Summary, error) {
	h, err := s.store.GetHabit(habitID)
	if err != nil {
		return habit.Summary{}, err
	}
	entries, err := s.store.ListEntries(habitID)
	if err != nil {
		return habit.Summary{}, err
	}
	return habit.BuildSummary(h, entries, s.now())
}

func (s *Server) summarizeAll() ([]habit.Summary, error) {
	habits, err := s.store.ListHabits()
	if err != nil {
		return nil, err
	}
	summaries := make([]habit.Summary, 0, len(habits))
	for _, h := range habits {
		summary, err := s.summarize(h.Name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Server) getBestHabits(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.summarizeAll()
	if err != nil {
		logger.Error("Failed to compute best habits", "error", err)
		http.Error(w, `{"error":"error computing analytics"}`, http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, AnalyticsResponse{Habits: analytics.Best(summaries)}); err != nil {
		logger.Error("Failed to serialize analytics response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getMostBrokenHabits(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.summarizeAll()
	if err != nil {
		logger.Error("Failed to compute most broken habits", "error", err)
		http.Error(w, `{"error":"error computing analytics"}`, http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, AnalyticsResponse{Habits: analytics.MostBroken(summaries)}); err != nil {
		logger.Error("Failed to serialize analytics response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getHabitsByPeriodicity(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.summarizeAll()
	if err != nil {
		logger.Error("Failed to group habits by periodicity", "error", err)
		http.Error(w, `{"error":"error computing analytics"}`, http.StatusInternalServerError)
		return
	}
	resp := PeriodicityGroupsResponse{Groups: analytics.GroupByPeriodicity(summaries)}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize analytics response", "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) updateActiveHabits() {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.Warn("Failed to update active habits metric", "error", err)
		return
	}
	activeHabits.Set(float64(len(habits)))
}
