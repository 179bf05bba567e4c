package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mhout/cadence/internal/config"
	"github.com/mhout/cadence/internal/storage"
)

var testNow = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(st storage.Store) http.Handler {
	s := New(st, &config.Config{})
	s.now = func() time.Time { return testNow }
	return s.Router()
}

func mockRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestListHabits_Empty(t *testing.T) {
	h := newTestServer(newMemStore())
	rr := mockRequest(h, http.MethodGet, "/habits/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var resp HabitListResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if len(resp.Habits) != 0 {
		t.Fatalf("len=%d want 0", len(resp.Habits))
	}
}

func TestCreateHabit_Valid(t *testing.T) {
	h := newTestServer(newMemStore())

	rr := mockRequest(h, http.MethodPost, "/habits/",
		createHabitRequest{Name: "guitar", Periodicity: "daily"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d want 201: %s", rr.Code, rr.Body.String())
	}

	rr = mockRequest(h, http.MethodGet, "/habits/", nil)
	var resp HabitListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(resp.Habits) != 1 || resp.Habits[0].Name != "guitar" {
		t.Fatalf("got %+v, want [guitar]", resp.Habits)
	}
}

func TestCreateHabit_InvalidPeriodicity(t *testing.T) {
	h := newTestServer(newMemStore())
	rr := mockRequest(h, http.MethodPost, "/habits/",
		createHabitRequest{Name: "guitar", Periodicity: "fortnightly"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestCreateHabit_NameTooLong(t *testing.T) {
	h := newTestServer(newMemStore())
	rr := mockRequest(h, http.MethodPost, "/habits/",
		createHabitRequest{Name: "averyveryverylonghabitnamethatexceedslimit", Periodicity: "daily"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestCheckOff_UnknownHabit(t *testing.T) {
	h := newTestServer(newMemStore())
	rr := mockRequest(h, http.MethodPost, "/habits/nope/checkoff", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rr.Code)
	}
}

func TestCheckOff_BadTimestamp(t *testing.T) {
	h := newTestServer(newMemStore())
	mockRequest(h, http.MethodPost, "/habits/",
		createHabitRequest{Name: "guitar", Periodicity: "daily"})

	rr := mockRequest(h, http.MethodPost, "/habits/guitar/checkoff",
		entryRequest{TimeStamp: 42})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestSummary_StreakWithGap(t *testing.T) {
	h := newTestServer(newMemStore())
	mockRequest(h, http.MethodPost, "/habits/",
		createHabitRequest{Name: "guitar", Periodicity: "daily"})

	// check-offs 4, 3 and 1 days ago plus today: runs of 2 and 2
	for _, daysAgo := range []int{4, 3, 1, 0} {
		ts := testNow.AddDate(0, 0, -daysAgo).Unix()
		rr := mockRequest(h, http.MethodPost, "/habits/guitar/checkoff",
			entryRequest{TimeStamp: ts})
		if rr.Code != http.StatusCreated {
			t.Fatalf("checkoff got %d want 201", rr.Code)
		}
	}

	rr := mockRequest(h, http.MethodGet, "/habits/guitar/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}
	var resp HabitSummaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.Summary.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", resp.Summary.CurrentStreak)
	}
	if resp.Summary.LongestStreak != 2 {
		t.Errorf("longest streak = %d, want 2", resp.Summary.LongestStreak)
	}
	if resp.Summary.BreakCount != 1 {
		t.Errorf("break count = %d, want 1", resp.Summary.BreakCount)
	}
	if !resp.Summary.IsActive {
		t.Error("expected habit to be active")
	}
}

func TestSummary_UnknownHabit(t *testing.T) {
	h := newTestServer(newMemStore())
	rr := mockRequest(h, http.MethodGet, "/habits/nope/summary", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rr.Code)
	}
}

func TestDeleteHabit(t *testing.T) {
	h := newTestServer(newMemStore())
	mockRequest(h, http.MethodPost, "/habits/",
		createHabitRequest{Name: "guitar", Periodicity: "daily"})

	rr := mockRequest(h, http.MethodDelete, "/habits/guitar", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("got %d want 204", rr.Code)
	}
	rr = mockRequest(h, http.MethodDelete, "/habits/guitar", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404 on second delete", rr.Code)
	}
}

func TestAnalytics_Best(t *testing.T) {
	h := newTestServer(newMemStore())

	mockRequest(h, http.MethodPost, "/habits/", createHabitRequest{Name: "walk", Periodicity: "daily"})
	mockRequest(h, http.MethodPost, "/habits/", createHabitRequest{Name: "read", Periodicity: "daily"})

	// walk: 3-day streak, read: 1-day streak
	for _, daysAgo := range []int{2, 1, 0} {
		mockRequest(h, http.MethodPost, "/habits/walk/checkoff",
			entryRequest{TimeStamp: testNow.AddDate(0, 0, -daysAgo).Unix()})
	}
	mockRequest(h, http.MethodPost, "/habits/read/checkoff",
		entryRequest{TimeStamp: testNow.Unix()})

	rr := mockRequest(h, http.MethodGet, "/analytics/best", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var resp AnalyticsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(resp.Habits) != 2 || resp.Habits[0].Name != "walk" {
		t.Fatalf("got %+v, want walk first", resp.Habits)
	}
	if resp.Habits[0].CurrentStreak != 3 {
		t.Errorf("walk streak = %d, want 3", resp.Habits[0].CurrentStreak)
	}
}

func TestAuth_RejectsMissingKey(t *testing.T) {
	st := newMemStore()
	s := New(st, &config.Config{AuthEnabled: true})
	s.now = func() time.Time { return testNow }
	h := s.Router()

	rr := mockRequest(h, http.MethodGet, "/habits/", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got %d want 401", rr.Code)
	}

	// version stays open
	rr = mockRequest(h, http.MethodGet, "/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200 for /version", rr.Code)
	}
}

func TestAuth_AcceptsRegisteredKey(t *testing.T) {
	st := newMemStore()
	key, err := RegisterAPIKey(st, "test")
	if err != nil {
		t.Fatalf("RegisterAPIKey failed: %v", err)
	}

	s := New(st, &config.Config{AuthEnabled: true})
	s.now = func() time.Time { return testNow }
	h := s.Router()

	req := httptest.NewRequest(http.MethodGet, "/habits/", nil)
	req.Header.Set("Authorization", "Bearer "+key)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/habits/", nil)
	req.Header.Set("Authorization", "Bearer "+APIKeyPrefix+"bogus")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got %d want 401 for bogus key", rr.Code)
	}
}
