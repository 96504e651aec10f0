package core

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when a catalog is built without kinds.
var ErrEmptyCatalog = errors.New("core: catalog has no tile kinds")

// Catalog is an ordered, immutable list of tile kinds.
type Catalog struct {
	kinds []TileKind
	byID  map[string]int
}

// NewCatalog validates kinds and returns a catalog holding a copy of them.
// IDs must be non-empty and unique.
func NewCatalog(kinds []TileKind) (*Catalog, error) {
	if len(kinds) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		kinds: make([]TileKind, len(kinds)),
		byID:  make(map[string]int, len(kinds)),
	}
	for i, k := range kinds {
		if k.ID == "" {
			return nil, fmt.Errorf("core: tile kind %d has empty id", i)
		}
		if _, dup := c.byID[k.ID]; dup {
			return nil, fmt.Errorf("core: duplicate tile kind %q", k.ID)
		}
		if k.Symbol == 0 {
			k.Symbol = []rune(k.ID)[0]
		}
		c.kinds[i] = k
		c.byID[k.ID] = i
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog of 32 kinds.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultKinds())
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}

// Kind returns the i-th kind in catalog order.
func (c *Catalog) Kind(i int) TileKind {
	return c.kinds[i]
}

// Lookup finds a kind by ID.
func (c *Catalog) Lookup(id string) (TileKind, bool) {
	i, ok := c.byID[id]
	if !ok {
		return TileKind{}, false
	}
	return c.kinds[i], true
}

// Kinds returns a copy of all kinds in order.
func (c *Catalog) Kinds() []TileKind {
	out := make([]TileKind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// DefaultKinds returns the built-in kind list. Only the first tileTypes
// entries of a level are used, so the order matters.
func DefaultKinds() []TileKind {
	return []TileKind{
		{ID: "apple", Glyph: "🍎", Category: "fruit", Symbol: 'A', Color: "red"},
		{ID: "green_apple", Glyph: "🍏", Category: "fruit", Symbol: 'G', Color: "bright_green"},
		{ID: "orange", Glyph: "🍊", Category: "fruit", Symbol: 'O', Color: "orange"},
		{ID: "tangerine", Glyph: "🍋", Category: "fruit", Symbol: 'T', Color: "bright_yellow"},
		{ID: "banana", Glyph: "🍌", Category: "fruit", Symbol: 'B', Color: "yellow"},
		{ID: "watermelon", Glyph: "🍉", Category: "fruit", Symbol: 'W', Color: "green"},
		{ID: "grape", Glyph: "🍇", Category: "fruit", Symbol: 'R', Color: "magenta"},
		{ID: "strawberry", Glyph: "🍓", Category: "fruit", Symbol: 'S', Color: "bright_red"},
		{ID: "blueberry", Glyph: "🫐", Category: "fruit", Symbol: 'U', Color: "blue"},
		{ID: "melon", Glyph: "🍈", Category: "fruit", Symbol: 'M', Color: "bright_green"},
		{ID: "cherry", Glyph: "🍒", Category: "fruit", Symbol: 'C', Color: "red"},
		{ID: "peach", Glyph: "🍑", Category: "fruit", Symbol: 'P', Color: "orange"},
		{ID: "mango", Glyph: "🥭", Category: "fruit", Symbol: 'N', Color: "bright_yellow"},
		{ID: "pineapple", Glyph: "🍍", Category: "fruit", Symbol: 'I', Color: "yellow"},
		{ID: "coconut", Glyph: "🥥", Category: "fruit", Symbol: 'K', Color: "white"},
		{ID: "kiwi", Glyph: "🥝", Category: "fruit", Symbol: 'V', Color: "green"},
		{ID: "tomato", Glyph: "🍅", Category: "fruit", Symbol: 't', Color: "bright_red"},
		{ID: "avocado", Glyph: "🥑", Category: "fruit", Symbol: 'a', Color: "green"},
		{ID: "eggplant", Glyph: "🍆", Category: "fruit", Symbol: 'e', Color: "bright_magenta"},
		{ID: "carrot", Glyph: "🥕", Category: "fruit", Symbol: 'c', Color: "orange"},
		{ID: "corn", Glyph: "🌽", Category: "fruit", Symbol: 'o', Color: "bright_yellow"},
		{ID: "pepper", Glyph: "🌶️", Category: "fruit", Symbol: 'p', Color: "red"},
		{ID: "broccoli", Glyph: "🥦", Category: "fruit", Symbol: 'b', Color: "bright_green"},
		{ID: "mushroom", Glyph: "🍄", Category: "fruit", Symbol: 'm', Color: "bright_white"},
		{ID: "chestnut", Glyph: "🌰", Category: "fruit", Symbol: 'n', Color: "gray"},
		{ID: "peanut", Glyph: "🥜", Category: "fruit", Symbol: 'u', Color: "yellow"},
		{ID: "honey", Glyph: "🍯", Category: "fruit", Symbol: 'h', Color: "orange"},
		{ID: "bread", Glyph: "🍞", Category: "fruit", Symbol: 'd', Color: "bright_yellow"},
		{ID: "cheese", Glyph: "🧀", Category: "fruit", Symbol: 'z', Color: "yellow"},
		{ID: "egg", Glyph: "🥚", Category: "fruit", Symbol: 'g', Color: "bright_white"},
		{ID: "cookie", Glyph: "🍪", Category: "fruit", Symbol: 'k', Color: "gray"},
		{ID: "cake", Glyph: "🍰", Category: "fruit", Symbol: 'y', Color: "bright_magenta"},
	}
}
