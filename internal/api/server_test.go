package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/ranking"
)

func newTestServer(t *testing.T, play http.Handler) (*Server, *ranking.Service) {
	t.Helper()
	svc := ranking.NewService(ranking.NewMemoryStore(), ranking.WithMax(3))
	return New(svc, core.DefaultLevelTable(), play, log.New(io.Discard)), svc
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Errorf("GET /health = %d %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantRank string // JSON form of the rank field
	}{
		{"valid", `{"nickname":"kim","score":500,"level":3,"time":20}`, http.StatusOK, "1"},
		{"missing nickname", `{"score":500}`, http.StatusBadRequest, ""},
		{"blank nickname", `{"nickname":"  ","score":500}`, http.StatusBadRequest, ""},
		{"missing score", `{"nickname":"kim"}`, http.StatusBadRequest, ""},
		{"score not a number", `{"nickname":"kim","score":"lots"}`, http.StatusBadRequest, ""},
		{"negative score", `{"nickname":"kim","score":-5}`, http.StatusBadRequest, ""},
		{"malformed", `{`, http.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)
			rec := do(t, s, http.MethodPost, "/api/score", tc.body)
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, expected %d (%s)", rec.Code, tc.wantCode, rec.Body)
			}

			var res map[string]json.RawMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tc.wantCode != http.StatusOK {
				if string(res["success"]) != "false" || len(res["message"]) == 0 {
					t.Errorf("error body = %s", rec.Body)
				}
				return
			}
			if string(res["success"]) != "true" || string(res["rank"]) != tc.wantRank {
				t.Errorf("body = %s", rec.Body)
			}
			var e ranking.Entry
			if err := json.Unmarshal(res["entry"], &e); err != nil || e.Nickname != "kim" || e.Level != 3 {
				t.Errorf("entry = %+v, %v", e, err)
			}
		})
	}
}

func TestScoreOffTheBoard(t *testing.T) {
	s, _ := newTestServer(t, nil)
	for _, body := range []string{
		`{"nickname":"a","score":30}`,
		`{"nickname":"b","score":20}`,
		`{"nickname":"c","score":10}`,
	} {
		if rec := do(t, s, http.MethodPost, "/api/score", body); rec.Code != http.StatusOK {
			t.Fatalf("seed %s: %d", body, rec.Code)
		}
	}

	rec := do(t, s, http.MethodPost, "/api/score", `{"nickname":"d","score":5}`)
	var res ranking.ScoreResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || !res.Success || res.Rank != nil {
		t.Errorf("low score = %d %s; expected success with null rank", rec.Code, rec.Body)
	}
}

func TestRankingsAndReset(t *testing.T) {
	s, svc := newTestServer(t, nil)
	ctx := context.Background()
	svc.Submit(ctx, "low", core.Outcome{Score: 10})  //nolint:errcheck // Seed data
	svc.Submit(ctx, "high", core.Outcome{Score: 90}) //nolint:errcheck // Seed data

	rec := do(t, s, http.MethodGet, "/api/rankings", "")
	var res ranking.RankingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Success || len(res.Rankings) != 2 || res.Rankings[0].Nickname != "high" {
		t.Errorf("rankings = %s", rec.Body)
	}

	rec = do(t, s, http.MethodDelete, "/api/rankings", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "rankings cleared") {
		t.Errorf("DELETE = %d %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/rankings", "")
	if !strings.Contains(rec.Body.String(), `"rankings":[]`) {
		t.Errorf("after reset = %s", rec.Body)
	}
}

func TestLevels(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/levels", "")

	var res levelsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Success || len(res.Levels) != core.DefaultLevelTable().Len() {
		t.Fatalf("levels = %s", rec.Body)
	}
	if res.Levels[0].Level != 1 || res.Levels[0].Cols == 0 || res.Levels[0].TimeLimit == 0 {
		t.Errorf("first level = %+v", res.Levels[0])
	}
}

func TestNotFoundAndPreflight(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"path":"/nope"`) {
		t.Errorf("404 = %d %s", rec.Code, rec.Body)
	}

	if rec := do(t, s, http.MethodGet, "/ws/play", ""); rec.Code != http.StatusNotFound {
		t.Errorf("play route without handler = %d, expected 404", rec.Code)
	}

	rec = do(t, s, http.MethodOptions, "/api/score", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", rec.Code)
	}
}

func TestPlayRouteMounted(t *testing.T) {
	called := false
	play := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	s, _ := newTestServer(t, play)

	rec := do(t, s, http.MethodGet, "/ws/play?nickname=kim", "")
	if !called || rec.Code != http.StatusTeapot {
		t.Errorf("play handler called=%v status=%d", called, rec.Code)
	}
}
