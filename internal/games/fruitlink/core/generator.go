package core

import (
	"fmt"
	"math/rand"
)

// Layout is a freshly generated level.
type Layout struct {
	Level     int
	Cols      int
	Rows      int
	TimeLimit int
	Tiles     []Tile // Row-major, len = 2*pairs
}

// Generator builds level layouts from a catalog and a level table.
type Generator struct {
	catalog *Catalog
	table   *LevelTable
	rng     *rand.Rand
}

// NewGenerator creates a generator. rng must not be shared with another goroutine.
func NewGenerator(catalog *Catalog, table *LevelTable, rng *rand.Rand) *Generator {
	return &Generator{catalog: catalog, table: table, rng: rng}
}

// Catalog returns the generator's catalog.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Table returns the generator's level table.
func (g *Generator) Table() *LevelTable {
	return g.table
}

// Generate produces a shuffled layout for level. Pair i uses catalog entry
// i % tileTypes, so kinds beyond tileTypes never appear.
func (g *Generator) Generate(level int) (Layout, error) {
	cfg, err := g.table.Config(level)
	if err != nil {
		return Layout{}, err
	}
	if cfg.TileTypes > g.catalog.Len() {
		return Layout{}, fmt.Errorf("core: level %d needs %d tile kinds, catalog has %d",
			level, cfg.TileTypes, g.catalog.Len())
	}

	pairs := cfg.Pairs()
	tiles := make([]Tile, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		kind := g.catalog.Kind(i % cfg.TileTypes)
		tiles = append(tiles,
			Tile{Kind: kind, PairID: i},
			Tile{Kind: kind, PairID: i},
		)
	}
	Shuffle(g.rng, tiles)
	for i := range tiles {
		tiles[i].Index = i
	}

	return Layout{
		Level:     level,
		Cols:      cfg.Cols,
		Rows:      cfg.Rows,
		TimeLimit: cfg.TimeLimit,
		Tiles:     tiles,
	}, nil
}

// Shuffle permutes items in place with a Fisher-Yates pass driven by rng.
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
