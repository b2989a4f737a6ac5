// Package leaderboard ranks finished sessions and persists the standings
// through a pluggable blob store.
package leaderboard

import "sort"

// Entry is one player's persisted best results. The JSON layout matches
// the storage format the web client wrote: streak, timeBonus and
// difficulty are optional and default to zero values on read.
type Entry struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Accuracy    int    `json:"accuracy"`
	GamesPlayed int    `json:"gamesPlayed"`
	Streak      int    `json:"streak,omitempty"`
	TimeBonus   int    `json:"timeBonus,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

// Merge folds entry into entries under the given player name and returns
// the re-sorted collection. Name lookup is case-sensitive: "Alice" and
// "alice" are distinct players.
//
// An existing player's record only ever improves: score, accuracy, streak
// and time bonus each take the maximum of old and new, games played
// accumulates, and difficulty records the most recent session's tier.
func Merge(entries []Entry, name string, entry Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	for i, e := range out {
		if e.Name != name {
			continue
		}
		out[i].Score = max(e.Score, entry.Score)
		out[i].Accuracy = max(e.Accuracy, entry.Accuracy)
		out[i].Streak = max(e.Streak, entry.Streak)
		out[i].TimeBonus = max(e.TimeBonus, entry.TimeBonus)
		out[i].GamesPlayed = e.GamesPlayed + entry.GamesPlayed
		out[i].Difficulty = entry.Difficulty
		Sort(out)
		return out
	}

	out = append(out, entry)
	Sort(out)
	return out
}

// Sort orders entries by score descending, then best streak descending.
// The sort is stable so equal entries keep their insertion order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Streak > entries[j].Streak
	})
}
