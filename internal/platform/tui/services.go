package tui

import (
	"context"

	"github.com/charmbracelet/log"

	fruitcore "github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/ranking"
	"github.com/vovakirdan/fruit-link/internal/storage"
)

// RankingSource lists the leaderboard. Both ranking.Service and
// ranking.Client satisfy it.
type RankingSource interface {
	Rankings(ctx context.Context) ([]ranking.Entry, error)
}

// RunStore keeps the local history of finished games.
type RunStore interface {
	SaveRun(gameID, nickname string, out fruitcore.Outcome) (int64, error)
	TopRuns(gameID string, limit int) ([]storage.Run, error)
}

// Services are the collaborators shared by every screen. Any of them may be
// nil; screens degrade to what is available.
type Services struct {
	Runs      RunStore
	Rankings  RankingSource
	Submitter ranking.Submitter
	Levels    []fruitcore.LevelConfig
	Logger    *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
