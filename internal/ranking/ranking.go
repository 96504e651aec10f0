// Package ranking keeps the leaderboard of finished FruitLink runs.
//
// A Service validates submissions and computes ranks on top of a Store.
// Stores exist in memory, as a JSON file and in SQLite (package storage).
// Client talks to a remote ranking server over HTTP; both Service and
// Client satisfy Submitter.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

const (
	// MaxNickname is the longest nickname kept, in runes.
	MaxNickname = 20
	// DefaultMax is the number of entries a leaderboard keeps.
	DefaultMax = 100
)

// ErrInvalidEntry is returned for submissions without a nickname or with a
// negative score.
var ErrInvalidEntry = errors.New("ranking: invalid entry")

// Entry is one leaderboard row.
type Entry struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Time      int       `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists entries ordered by score, highest first. Entries with equal
// scores keep insertion order.
type Store interface {
	Insert(ctx context.Context, e Entry) error
	// Top returns the best entries. limit <= 0 returns all of them.
	Top(ctx context.Context, limit int) ([]Entry, error)
	Clear(ctx context.Context) error
	// Trim drops everything below the first max entries.
	Trim(ctx context.Context, max int) error
}

// Submitter records a finished run and reports its rank. ok is false when
// the run did not make the leaderboard.
type Submitter interface {
	Submit(ctx context.Context, nickname string, out core.Outcome) (rank int, ok bool, err error)
}

// NormalizeNickname trims surrounding space and truncates to MaxNickname runes.
func NormalizeNickname(nickname string) (string, error) {
	n := strings.TrimSpace(nickname)
	if n == "" {
		return "", fmt.Errorf("%w: nickname is required", ErrInvalidEntry)
	}
	if utf8.RuneCountInString(n) > MaxNickname {
		n = string([]rune(n)[:MaxNickname])
	}
	return n, nil
}

// FormatRank renders a rank for display, "-" when unknown.
func FormatRank(rank int, ok bool) string {
	if !ok || rank <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", rank)
}

// insertSorted places e after every entry scoring at least as much.
func insertSorted(entries []Entry, e Entry) []Entry {
	i := 0
	for i < len(entries) && entries[i].Score >= e.Score {
		i++
	}
	entries = append(entries, Entry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}

// head returns a copy of the first limit entries.
func head(entries []Entry, limit int) []Entry {
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]Entry, limit)
	copy(out, entries[:limit])
	return out
}
