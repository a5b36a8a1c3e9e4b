// Package rank counts command occurrences and orders them by frequency.
package rank

import (
	"fmt"
	"sort"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
)

// DefaultLimit is the number of commands shown when nothing is configured.
const DefaultLimit = 3

// RankedCommand is a distinct command and how many times it occurs.
type RankedCommand struct {
	Command string `json:"command" yaml:"command" toml:"command"`
	Count   int    `json:"count" yaml:"count" toml:"count"`
}

// entry tracks a command's count and where it first appeared.
type entry struct {
	RankedCommand
	first int
}

// Rank returns at most limit commands ordered by descending count.
//
// Commands are compared exactly (case-sensitive, no normalization). Ties are
// broken by first appearance in history, so the output is fully determined
// by the input. A negative limit is rejected; zero yields an empty result.
func Rank(history []string, limit int) ([]RankedCommand, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, tcerrors.ErrInvalid)
	}
	if limit == 0 || len(history) == 0 {
		return []RankedCommand{}, nil
	}

	index := make(map[string]int, len(history))
	var entries []entry
	for i, cmd := range history {
		if j, ok := index[cmd]; ok {
			entries[j].Count++
			continue
		}
		index[cmd] = len(entries)
		entries = append(entries, entry{RankedCommand: RankedCommand{Command: cmd, Count: 1}, first: i})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Count != entries[b].Count {
			return entries[a].Count > entries[b].Count
		}
		return entries[a].first < entries[b].first
	})

	n := min(limit, len(entries))
	result := make([]RankedCommand, n)
	for i := 0; i < n; i++ {
		result[i] = entries[i].RankedCommand
	}
	return result, nil
}

// Distinct returns the number of distinct commands in history.
func Distinct(history []string) int {
	seen := make(map[string]struct{}, len(history))
	for _, cmd := range history {
		seen[cmd] = struct{}{}
	}
	return len(seen)
}

// Share returns count as a fraction of total, or zero when total is zero.
func Share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}
