// Package api is the HTTP face of a FruitLink server.
//
// Routes:
//   - GET    /health         liveness probe
//   - GET    /api/rankings   leaderboard, best first
//   - POST   /api/score      record a finished run
//   - DELETE /api/rankings   clear the leaderboard
//   - GET    /api/levels     level table for clients
//   - GET    /ws/play        websocket play session (when a play handler is set)
//
// The play route sits outside the request timeout since it lives as long
// as the game.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/ranking"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server bundles the router and its collaborators.
type Server struct {
	r        *chi.Mux
	rankings *ranking.Service
	levels   *core.LevelTable
	logger   *log.Logger
}

// New constructs a Server, installs middleware and registers routes.
// play may be nil, in which case /ws/play is not served.
func New(rankings *ranking.Service, levels *core.LevelTable, play http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{r: chi.NewRouter(), rankings: rankings, levels: levels, logger: logger}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(cors)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/rankings", s.handleRankings)
			r.Delete("/rankings", s.handleResetRankings)
			r.Post("/score", s.handleScore)
			r.Get("/levels", s.handleLevels)
		})
	})

	if play != nil {
		s.r.Handle("/ws/play", play)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: requestTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ------------------------------- rankings ----------------------------------

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	list, err := s.rankings.Rankings(r.Context())
	if err != nil {
		s.logger.Error("load rankings", "err", err)
		writeJSON(w, http.StatusInternalServerError, ranking.RankingsResponse{Message: "cannot load rankings"})
		return
	}
	writeJSON(w, http.StatusOK, ranking.RankingsResponse{Success: true, Rankings: list})
}

func (s *Server) handleResetRankings(w http.ResponseWriter, r *http.Request) {
	if err := s.rankings.Reset(r.Context()); err != nil {
		s.logger.Error("clear rankings", "err", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "cannot clear rankings"})
		return
	}
	s.logger.Info("rankings cleared")
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "rankings cleared"})
}

// handleScore records a run. A run that falls off the leaderboard is still
// a success, with a null rank.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ranking.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ranking.ScoreResponse{Message: "nickname and numeric score are required"})
		return
	}
	if req.Score == nil {
		writeJSON(w, http.StatusBadRequest, ranking.ScoreResponse{Message: "score must be a number"})
		return
	}

	e, rank, ok, err := s.rankings.Record(r.Context(), req.Nickname, core.Outcome{
		Score: *req.Score,
		Level: req.Level,
		Time:  req.Time,
	})
	if errors.Is(err, ranking.ErrInvalidEntry) {
		writeJSON(w, http.StatusBadRequest, ranking.ScoreResponse{Message: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("save score", "err", err)
		writeJSON(w, http.StatusInternalServerError, ranking.ScoreResponse{Message: "cannot save score"})
		return
	}

	res := ranking.ScoreResponse{Success: true, Entry: &e}
	if ok {
		res.Rank = &rank
	}
	s.logger.Info("score recorded", "nickname", e.Nickname, "score", e.Score, "rank", ranking.FormatRank(rank, ok))
	writeJSON(w, http.StatusOK, res)
}

// -------------------------------- levels -----------------------------------

type levelsResponse struct {
	Success bool               `json:"success"`
	Levels  []core.LevelConfig `json:"levels"`
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, levelsResponse{Success: true, Levels: s.levels.Levels()})
}

// ------------------------------- small util --------------------------------

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
