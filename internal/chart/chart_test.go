package chart

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/chazuruo/topcmds/internal/rank"
	"github.com/chazuruo/topcmds/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderChart(t *testing.T, top []rank.RankedCommand) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, Options{NoColor: true}).Chart(top))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestChartLayout(t *testing.T) {
	lines := renderChart(t, []rank.RankedCommand{{Command: "ls", Count: 2}, {Command: "cd /tmp", Count: 1}})

	// border, blank, 2 rows per entry, blank, border
	require.Len(t, lines, 8)
	assert.Equal(t, " ╔"+strings.Repeat("═", 48)+"╗", lines[0])
	assert.Equal(t, " ║"+strings.Repeat(" ", 48)+"║", lines[1])
	assert.Equal(t, " ║  1. ls (2 times)"+strings.Repeat(" ", 31)+"║", lines[2])
	assert.Equal(t, " ║  "+strings.Repeat("█", 44)+"  ║", lines[3])
	assert.Equal(t, " ║  2. cd /tmp (1 times)"+strings.Repeat(" ", 26)+"║", lines[4])
	assert.Equal(t, " ║  "+strings.Repeat("█", 22)+strings.Repeat("░", 22)+"  ║", lines[5])
	assert.Equal(t, lines[1], lines[6])
	assert.Equal(t, " ╚"+strings.Repeat("═", 48)+"╝", lines[7])

	for i, line := range lines {
		assert.Equal(t, 51, utf8.RuneCountInString(line), "line %d has wrong width: %q", i, line)
	}
}

func TestChartTruncatesLongCommands(t *testing.T) {
	long := "docker run --rm -it -v /var/run/docker.sock:/var/run/docker.sock alpine"
	lines := renderChart(t, []rank.RankedCommand{{Command: long, Count: 3}})

	assert.Contains(t, lines[2], long[:30]+"..")
	assert.NotContains(t, lines[2], long[:31])
	for i, line := range lines {
		assert.Equal(t, 51, utf8.RuneCountInString(line), "line %d has wrong width: %q", i, line)
	}
}

func TestChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, Options{NoColor: true}).Chart(nil))
	assert.Equal(t, InsufficientDataMessage+"\n", buf.String())
	assert.NotContains(t, buf.String(), "╔")
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   Header
		want     []string
		wantNote bool
	}{
		{
			name:   "bash",
			header: Header{Shell: shell.ShellBash, HistoryLen: 42},
			want:   []string{"• Current Shell: Bash", "• History length: 42"},
		},
		{
			name:     "fish adds note",
			header:   Header{Shell: shell.ShellFish, HistoryLen: 3},
			want:     []string{"• Current Shell: Fish", "• History length: 3"},
			wantNote: true,
		},
		{
			name:   "unknown",
			header: Header{Shell: shell.ShellUnknown},
			want:   []string{"• Current Shell: Unknown", "• History length: 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewRenderer(&buf, Options{NoColor: true}).Header(tt.header))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			assert.Equal(t, tt.wantNote, strings.Contains(buf.String(), "Fish shell does not save"))
		})
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Header{Shell: shell.ShellZsh, HistoryLen: 3},
		[]rank.RankedCommand{{Command: "ls", Count: 2}}, Options{NoColor: true})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "• Current Shell: Zsh\n"))
	assert.Contains(t, out, "1. ls (2 times)")
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		count, maxCount, want int
	}{
		{10, 10, 44},
		{5, 10, 22},
		{1, 3, 14},
		{0, 10, 0},
		{3, 0, 0},
		{20, 10, 44},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BarLength(tt.count, tt.maxCount), "BarLength(%d, %d)", tt.count, tt.maxCount)
	}
}

func TestDisplayCommand(t *testing.T) {
	assert.Equal(t, "git status", DisplayCommand("git status", 40))
	assert.Equal(t, strings.Repeat("a", 30), DisplayCommand(strings.Repeat("a", 30), 40))
	assert.Equal(t, strings.Repeat("a", 30)+"..", DisplayCommand(strings.Repeat("a", 31), 40))
	assert.Equal(t, "echo a b", DisplayCommand("echo\ta\nb", 40))
	assert.Equal(t, "abcdefg..", DisplayCommand(strings.Repeat("abcdefghij", 4), 9))
	assert.Equal(t, "echo ?[31mred?", DisplayCommand("echo \x1b[31mred\a", 40))
	assert.Equal(t, "a?b", DisplayCommand("a\u0085b", 40))
}

func TestChartEscapesControlCharacters(t *testing.T) {
	lines := renderChart(t, []rank.RankedCommand{{Command: "printf '\x1b[2J\a'", Count: 1}})

	for i, line := range lines {
		assert.NotContains(t, line, "\x1b", "line %d", i)
		assert.NotContains(t, line, "\a", "line %d", i)
		assert.Equal(t, 51, utf8.RuneCountInString(line), "line %d has wrong width: %q", i, line)
	}
	assert.Contains(t, lines[2], "printf '?[2J?'")
}
