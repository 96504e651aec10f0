package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/fruit-link/internal/config"
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/platform/tui"
	"github.com/vovakirdan/fruit-link/internal/ranking"
	"github.com/vovakirdan/fruit-link/internal/storage"
)

// Store kinds accepted by --store.
const (
	storeSQLite = "sqlite"
	storeFile   = "file"
	storeMemory = "memory"
)

// backend is the ranking service and, with the sqlite store, the local
// history of finished games.
type backend struct {
	rankings *ranking.Service
	db       *storage.Store // nil unless --store sqlite
}

// openBackend opens the store selected by --store.
func openBackend() (*backend, error) {
	switch strings.ToLower(flagStore) {
	case storeSQLite, "":
		db, err := storage.Open(flagDBPath)
		if err != nil {
			return nil, err
		}
		return &backend{rankings: ranking.NewService(db), db: db}, nil

	case storeFile:
		path := expandHome(flagDBPath)
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
		fs, err := ranking.NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return &backend{rankings: ranking.NewService(fs)}, nil

	case storeMemory:
		return &backend{rankings: ranking.NewService(ranking.NewMemoryStore())}, nil
	}

	return nil, fmt.Errorf("unknown store %q (want sqlite, file or memory)", flagStore)
}

// Close releases the database, if any.
func (b *backend) Close() {
	if b != nil && b.db != nil {
		b.db.Close()
	}
}

// services wires the backend into the terminal front end. A nil backend
// leaves every screen without persistence.
func (b *backend) services(levels *core.LevelTable) tui.Services {
	s := tui.Services{Logger: logger}
	if levels != nil {
		s.Levels = levels.Levels()
	}
	if b == nil {
		return s
	}

	s.Rankings = b.rankings
	s.Submitter = b.rankings
	if b.db != nil {
		s.Runs = b.db
	}
	return s
}

// gameSetup is the loaded game configuration for one difficulty.
type gameSetup struct {
	cfg     config.FruitLinkConfig
	catalog *core.Catalog
	levels  *core.LevelTable
	seeds   atomic.Int64
}

// loadGame loads --config and builds the catalog and level table.
func loadGame(difficulty string) (*gameSetup, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadFruitLink(flagConfig)
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.NewCatalog()
	if err != nil {
		return nil, err
	}
	levels, err := cfg.NewLevelTable(preset)
	if err != nil {
		return nil, err
	}

	return &gameSetup{cfg: cfg, catalog: catalog, levels: levels}, nil
}

// NewSession builds a fresh engine session. With --seed every session
// gets a distinct but reproducible seed.
func (g *gameSetup) NewSession() *core.Session {
	n := g.seeds.Add(1)
	seed := time.Now().UnixNano()
	if flagSeed != 0 {
		seed = flagSeed + n - 1
	}

	rng := rand.New(rand.NewSource(seed))
	return core.NewSession(core.NewGenerator(g.catalog, g.levels, rng), g.cfg.Rules(), rng)
}
