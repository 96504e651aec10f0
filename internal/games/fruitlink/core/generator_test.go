package core

import (
	"errors"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestGenerateLevelOne(t *testing.T) {
	layout, err := newTestGenerator(42).Generate(1)
	if err != nil {
		t.Fatalf("Generate(1) error = %v", err)
	}

	if layout.Cols != 6 || layout.Rows != 4 {
		t.Errorf("expected 6x4 board, got %dx%d", layout.Cols, layout.Rows)
	}
	if layout.TimeLimit != 45 {
		t.Errorf("TimeLimit = %d, expected 45", layout.TimeLimit)
	}
	if len(layout.Tiles) != 24 {
		t.Fatalf("expected 24 tiles, got %d", len(layout.Tiles))
	}

	allowed := make(map[string]bool)
	for _, k := range DefaultKinds()[:10] {
		allowed[k.ID] = true
	}
	pairs := make(map[int][]Tile)
	for i, tile := range layout.Tiles {
		if tile.Index != i {
			t.Errorf("tile %d has Index %d", i, tile.Index)
		}
		if !allowed[tile.Kind.ID] {
			t.Errorf("tile %d uses kind %q outside the first 10", i, tile.Kind.ID)
		}
		pairs[tile.PairID] = append(pairs[tile.PairID], tile)
	}
	if len(pairs) != 12 {
		t.Errorf("expected 12 pairs, got %d", len(pairs))
	}
	for id, p := range pairs {
		if len(p) != 2 {
			t.Errorf("pair %d has %d tiles", id, len(p))
			continue
		}
		if p[0].Kind.ID != p[1].Kind.ID {
			t.Errorf("pair %d mixes %q and %q", id, p[0].Kind.ID, p[1].Kind.ID)
		}
	}

	b := NewBoard(layout.Cols, layout.Rows, layout.Tiles)
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestGenerateAllTableLevels(t *testing.T) {
	g := newTestGenerator(7)
	for _, cfg := range DefaultLevels() {
		layout, err := g.Generate(cfg.Level)
		if err != nil {
			t.Fatalf("Generate(%d) error = %v", cfg.Level, err)
		}
		if len(layout.Tiles) != 2*(cfg.Cols*cfg.Rows/2) {
			t.Errorf("level %d: %d tiles", cfg.Level, len(layout.Tiles))
		}
		b := NewBoard(layout.Cols, layout.Rows, layout.Tiles)
		if err := b.Validate(); err != nil {
			t.Errorf("level %d: Validate() error = %v", cfg.Level, err)
		}
	}
}

func TestGenerateOddBoard(t *testing.T) {
	table, err := NewLevelTable([]LevelConfig{
		{Level: 1, Cols: 3, Rows: 3, TileTypes: 2, TimeLimit: 30},
	}, 5, 30)
	if err != nil {
		t.Fatalf("NewLevelTable() error = %v", err)
	}
	g := NewGenerator(DefaultCatalog(), table, rand.New(rand.NewSource(1)))

	layout, err := g.Generate(1)
	if err != nil {
		t.Fatalf("Generate(1) error = %v", err)
	}
	if len(layout.Tiles) != 8 {
		t.Fatalf("expected 8 tiles on a 3x3 board, got %d", len(layout.Tiles))
	}
	b := NewBoard(layout.Cols, layout.Rows, layout.Tiles)
	if !b.Cells[8].IsEmpty() {
		t.Error("trailing cell of an odd board should stay empty")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := newTestGenerator(99).Generate(3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestGenerator(99).Generate(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different layouts")
	}
}

func TestGenerateCatalogTooSmall(t *testing.T) {
	small, err := NewCatalog(DefaultKinds()[:5])
	if err != nil {
		t.Fatal(err)
	}
	g := NewGenerator(small, DefaultLevelTable(), rand.New(rand.NewSource(1)))
	if _, err := g.Generate(1); err == nil {
		t.Error("expected error when level needs more kinds than the catalog has")
	}
}

func TestLevelTableConfig(t *testing.T) {
	table := DefaultLevelTable()
	tests := []struct {
		level    int
		cols     int
		rows     int
		types    int
		timeLeft int
	}{
		{1, 6, 4, 10, 45},
		{5, 8, 6, 18, 65},
		{10, 10, 9, 28, 90},
		{11, 10, 9, 28, 85},
		{16, 10, 9, 28, 60},
		{22, 10, 9, 28, 30},
		{40, 10, 9, 28, 30},
	}

	for _, tc := range tests {
		cfg, err := table.Config(tc.level)
		if err != nil {
			t.Fatalf("Config(%d) error = %v", tc.level, err)
		}
		if cfg.Level != tc.level || cfg.Cols != tc.cols || cfg.Rows != tc.rows ||
			cfg.TileTypes != tc.types || cfg.TimeLimit != tc.timeLeft {
			t.Errorf("Config(%d) = %+v", tc.level, cfg)
		}
	}

	for _, bad := range []int{0, -3} {
		if _, err := table.Config(bad); !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("Config(%d) error = %v, expected ErrInvalidLevel", bad, err)
		}
	}
}

func TestNewLevelTableRejectsGaps(t *testing.T) {
	_, err := NewLevelTable([]LevelConfig{
		{Level: 1, Cols: 2, Rows: 2, TileTypes: 1, TimeLimit: 10},
		{Level: 3, Cols: 2, Rows: 2, TileTypes: 1, TimeLimit: 10},
	}, 5, 30)
	if err == nil {
		t.Error("expected error for non-contiguous level numbers")
	}
}

func TestLevelTableScale(t *testing.T) {
	easy := DefaultLevelTable().Scale(1.5)
	cfg, _ := easy.Config(1)
	if cfg.TimeLimit != 68 {
		t.Errorf("scaled level 1 time = %d, expected 68", cfg.TimeLimit)
	}
	cfg, _ = easy.Config(50)
	if cfg.TimeLimit != 45 {
		t.Errorf("scaled overflow floor = %d, expected 45", cfg.TimeLimit)
	}
}

func TestShufflePreservesElements(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(rng, items)

	sorted := append([]int(nil), items...)
	sort.Ints(sorted)
	if !reflect.DeepEqual(sorted, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("Shuffle() changed the elements: %v", items)
	}

	Shuffle(rng, []int{})
	Shuffle(rng, []int{1})
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	kinds := []TileKind{{ID: "apple"}, {ID: "apple"}}
	if _, err := NewCatalog(kinds); err == nil {
		t.Error("expected error for duplicate ids")
	}
	if _, err := NewCatalog(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("NewCatalog(nil) error = %v, expected ErrEmptyCatalog", err)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 32 {
		t.Errorf("expected 32 kinds, got %d", c.Len())
	}
	if c.Kind(0).ID != "apple" {
		t.Errorf("first kind = %q, expected apple", c.Kind(0).ID)
	}
	symbols := make(map[rune]string)
	for _, k := range c.Kinds() {
		if other, dup := symbols[k.Symbol]; dup {
			t.Errorf("kinds %q and %q share symbol %q", other, k.ID, k.Symbol)
		}
		symbols[k.Symbol] = k.ID
	}
	if _, ok := c.Lookup("cake"); !ok {
		t.Error("Lookup(cake) failed")
	}
}
