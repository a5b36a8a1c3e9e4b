package rank

import (
	"fmt"
	"math/rand"
	"testing"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		limit   int
		want    []RankedCommand
	}{
		{
			name:    "bash example",
			history: []string{"ls", "cd /tmp", "ls"},
			limit:   2,
			want:    []RankedCommand{{"ls", 2}, {"cd /tmp", 1}},
		},
		{
			name:    "empty history",
			history: nil,
			limit:   3,
			want:    []RankedCommand{},
		},
		{
			name:    "zero limit",
			history: []string{"ls", "ls"},
			limit:   0,
			want:    []RankedCommand{},
		},
		{
			name:    "limit larger than distinct count",
			history: []string{"a", "b", "a"},
			limit:   10,
			want:    []RankedCommand{{"a", 2}, {"b", 1}},
		},
		{
			name:    "ties keep first appearance order",
			history: []string{"z", "y", "x", "y", "z", "x", "w"},
			limit:   4,
			want:    []RankedCommand{{"z", 2}, {"y", 2}, {"x", 2}, {"w", 1}},
		},
		{
			name:    "case sensitive",
			history: []string{"Make", "make", "make"},
			limit:   3,
			want:    []RankedCommand{{"make", 2}, {"Make", 1}},
		},
		{
			name:    "no whitespace normalization",
			history: []string{"ls", "ls ", " ls", "ls"},
			limit:   3,
			want:    []RankedCommand{{"ls", 2}, {"ls ", 1}, {" ls", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(tt.history, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankNegativeLimit(t *testing.T) {
	_, err := Rank([]string{"ls"}, -1)
	require.Error(t, err)
	assert.True(t, tcerrors.IsInvalid(err))
}

// TestRankProperties checks length, ordering and determinism over
// generated histories.
func TestRankProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		size := rng.Intn(50)
		history := make([]string, size)
		for j := range history {
			history[j] = fmt.Sprintf("cmd-%d", rng.Intn(8))
		}
		limit := rng.Intn(12)

		got, err := Rank(history, limit)
		require.NoError(t, err)

		assert.Len(t, got, min(limit, Distinct(history)), "history=%v limit=%d", history, limit)
		for k := 1; k < len(got); k++ {
			assert.GreaterOrEqual(t, got[k-1].Count, got[k].Count, "not sorted: %v", got)
		}

		again, err := Rank(history, limit)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	history := []string{"b", "a", "b"}
	_, err := Rank(history, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b"}, history)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, 0, Distinct(nil))
	assert.Equal(t, 2, Distinct([]string{"a", "b", "a"}))
}

func TestShare(t *testing.T) {
	assert.Equal(t, 0.0, Share(3, 0))
	assert.InDelta(t, 0.25, Share(1, 4), 1e-9)
}
