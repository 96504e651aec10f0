package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

const clientTimeout = 5 * time.Second

// ScoreRequest is the body of POST /api/score.
type ScoreRequest struct {
	Nickname string `json:"nickname"`
	Score    *int   `json:"score"`
	Level    int    `json:"level"`
	Time     int    `json:"time"`
}

// ScoreResponse is the reply to POST /api/score.
type ScoreResponse struct {
	Success bool   `json:"success"`
	Rank    *int   `json:"rank"`
	Entry   *Entry `json:"entry,omitempty"`
	Message string `json:"message,omitempty"`
}

// RankingsResponse is the reply to GET /api/rankings.
type RankingsResponse struct {
	Success  bool    `json:"success"`
	Rankings []Entry `json:"rankings"`
	Message  string  `json:"message,omitempty"`
}

// Client submits runs to a remote ranking server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: clientTimeout},
	}
}

// Submit posts a finished run.
func (c *Client) Submit(ctx context.Context, nickname string, out core.Outcome) (int, bool, error) {
	score := out.Score
	body, err := json.Marshal(ScoreRequest{
		Nickname: nickname,
		Score:    &score,
		Level:    out.Level,
		Time:     out.Time,
	})
	if err != nil {
		return 0, false, fmt.Errorf("ranking: encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/score", bytes.NewReader(body))
	if err != nil {
		return 0, false, fmt.Errorf("ranking: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res ScoreResponse
	if err := c.do(req, &res); err != nil {
		return 0, false, err
	}
	if !res.Success {
		return 0, false, fmt.Errorf("ranking: server refused score: %s", res.Message)
	}
	if res.Rank == nil {
		return 0, false, nil
	}
	return *res.Rank, true, nil
}

// Rankings fetches the remote leaderboard.
func (c *Client) Rankings(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/rankings", nil)
	if err != nil {
		return nil, fmt.Errorf("ranking: build request: %w", err)
	}

	var res RankingsResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("ranking: server error: %s", res.Message)
	}
	return res.Rankings, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ranking: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("ranking: decode %s response (status %d): %w", req.URL.Path, resp.StatusCode, err)
	}
	return nil
}
