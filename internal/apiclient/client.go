package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mhout/cadence/internal/server"
	"github.com/mhout/cadence/pkg/habit"
	"github.com/mhout/cadence/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(base, apiKey string) *Client {
	return &Client{
		BaseURL: base,
		APIKey:  apiKey,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) CreateHabit(ctx context.Context, name, periodicity string) error {
	body := map[string]string{"name": name, "periodicity": periodicity}
	return c.do(ctx, http.MethodPost, "/habits/", body, nil)
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var resp server.HabitListResponse
	if err := c.do(ctx, http.MethodGet, "/habits/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Habits, nil
}

func (c *Client) GetEntries(ctx context.Context, name string) ([]habit.Entry, error) {
	var resp server.HabitGetResponse
	if err := c.do(ctx, http.MethodGet, "/habits/"+name, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *Client) CheckOff(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/habits/"+name+"/checkoff", nil, nil)
}

func (c *Client) Restart(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/habits/"+name+"/restart", nil, nil)
}

func (c *Client) DeleteHabit(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+name, nil, nil)
}

func (c *Client) GetHabitSummary(ctx context.Context, name string) (*habit.Summary, error) {
	var resp server.HabitSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/habits/"+name+"/summary", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Summary, nil
}

func (c *Client) BestHabits(ctx context.Context) ([]habit.Summary, error) {
	var resp server.AnalyticsResponse
	if err := c.do(ctx, http.MethodGet, "/analytics/best", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Habits, nil
}

func (c *Client) MostBrokenHabits(ctx context.Context) ([]habit.Summary, error) {
	var resp server.AnalyticsResponse
	if err := c.do(ctx, http.MethodGet, "/analytics/broken", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Habits, nil
}

func (c *Client) HabitsByPeriodicity(ctx context.Context) (map[habit.Periodicity][]habit.Summary, error) {
	var resp server.PeriodicityGroupsResponse
	if err := c.do(ctx, http.MethodGet, "/analytics/periodicity", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *Client) ServerVersion(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var info versioninfo.VersionInfo
	if err := c.do(ctx, http.MethodGet, "/version", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
