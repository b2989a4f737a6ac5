package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Storage keys. The standings and the reset bookkeeping live under
// separate fixed keys so a malformed standings blob cannot corrupt the
// reset schedule.
const (
	entriesKey = "cartopolis:leaderboard"
	resetKey   = "cartopolis:leaderboard:reset"
)

// Board holds the in-memory standings and writes them through to the blob
// store after every mutation. The mutex gives Commit the read-modify-write
// discipline the max/sum merge invariant needs once sessions finish
// concurrently.
type Board struct {
	store     BlobStore
	logger    *slog.Logger
	resetHour int              // wall-clock hour (UTC) of the daily reset
	now       func() time.Time // injectable for reset-boundary tests

	mu      sync.Mutex
	entries []Entry
}

func NewBoard(store BlobStore, logger *slog.Logger, resetHour int) *Board {
	return &Board{
		store:     store,
		logger:    logger,
		resetHour: resetHour,
		now:       time.Now,
	}
}

// Open loads the persisted standings, applying the daily reset policy
// first. This is a startup-time check only; a running server never resets
// mid-session. Malformed or absent stored data degrades to an empty board,
// never an error.
func (b *Board) Open(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	reset, err := b.shouldReset(ctx)
	if err != nil {
		return err
	}
	if reset {
		b.entries = nil
		if err := b.persistLocked(ctx); err != nil {
			return fmt.Errorf("persisting reset board: %w", err)
		}
		if err := b.store.Save(ctx, resetKey, []byte(b.now().UTC().Format(time.RFC3339))); err != nil {
			return fmt.Errorf("recording reset time: %w", err)
		}
		b.logger.Info("leaderboard reset", "hour_utc", b.resetHour)
		return nil
	}

	blob, ok, err := b.store.Load(ctx, entriesKey)
	if err != nil {
		return fmt.Errorf("loading leaderboard: %w", err)
	}
	if !ok {
		b.entries = nil
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(blob, &entries); err != nil {
		b.logger.Warn("stored leaderboard is malformed, starting empty", "error", err)
		b.entries = nil
		return nil
	}
	Sort(entries)
	b.entries = entries
	return nil
}

// shouldReset reports whether the last recorded reset predates the most
// recent scheduled reset instant (resetHour UTC today, or yesterday if
// that hour hasn't passed yet). An absent or unparseable timestamp counts
// as overdue.
func (b *Board) shouldReset(ctx context.Context) (bool, error) {
	blob, ok, err := b.store.Load(ctx, resetKey)
	if err != nil {
		return false, fmt.Errorf("loading reset time: %w", err)
	}
	if !ok {
		return true, nil
	}
	last, err := time.Parse(time.RFC3339, string(blob))
	if err != nil {
		return true, nil
	}

	now := b.now().UTC()
	instant := time.Date(now.Year(), now.Month(), now.Day(), b.resetHour, 0, 0, 0, time.UTC)
	if now.Before(instant) {
		instant = instant.AddDate(0, 0, -1)
	}
	return last.UTC().Before(instant), nil
}

// Commit merges entry into the standings and persists the result,
// returning the updated board.
func (b *Board) Commit(ctx context.Context, entry Entry) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = Merge(b.entries, entry.Name, entry)
	if err := b.persistLocked(ctx); err != nil {
		return nil, err
	}
	return b.snapshotLocked(), nil
}

// Entries returns a copy of the current standings.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Board) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(b.entries)
	if err != nil {
		return fmt.Errorf("encoding leaderboard: %w", err)
	}
	if err := b.store.Save(ctx, entriesKey, blob); err != nil {
		return fmt.Errorf("saving leaderboard: %w", err)
	}
	return nil
}

func (b *Board) snapshotLocked() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}
