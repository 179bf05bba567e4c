package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mhout/cadence/internal/config"
	"github.com/mhout/cadence/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	store storage.Store
	cfg   *config.Config

	// now is injectable so summary handlers are deterministic under test.
	now func() time.Time
}

func New(store storage.Store, cfg *config.Config) *Server {
	return &Server{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.AuthEnabled {
			r.Use(s.authMiddleware)
		}

		r.Route("/habits", func(r chi.Router) {
			r.Post("/", s.createHabit)
			r.Get("/", s.listHabits)
			r.Get("/{habit_id}", s.getHabit)
			r.Delete("/{habit_id}", s.deleteHabit)
			r.Post("/{habit_id}/checkoff", s.checkOffHabit)
			r.Post("/{habit_id}/restart", s.restartHabit)
			r.Get("/{habit_id}/summary", s.getHabitSummary)
		})
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/best", s.getBestHabits)
			r.Get("/broken", s.getMostBrokenHabits)
			r.Get("/periodicity", s.getHabitsByPeriodicity)
		})
	})

	return r
}
