// Package chart draws the ranked commands as a boxed ASCII bar chart.
package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/chazuruo/topcmds/internal/rank"
	"github.com/chazuruo/topcmds/internal/shell"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// BarWidth is the number of cells a full bar occupies.
	BarWidth = 44

	// innerWidth is the space between the vertical borders.
	innerWidth = BarWidth + 4

	// maxCommandWidth is where long commands are cut before adding "..".
	maxCommandWidth = 30

	barFull  = "█"
	barEmpty = "░"
)

// InsufficientDataMessage is printed instead of a chart when nothing was ranked.
const InsufficientDataMessage = "Insufficient data to generate a chart."

// FishNote explains why fish counts stay low.
const FishNote = `Note: The Fish shell does not save every command invocation
individually, but rather records the last time a command
was executed. As a result, the occurrence count of a
command may not exceed a few instances.`

// Options controls rendering.
type Options struct {
	// NoColor disables ANSI styling.
	NoColor bool
}

// Header is the summary printed above the chart.
type Header struct {
	Shell      shell.ShellType
	HistoryLen int
}

// Renderer writes charts to one writer.
type Renderer struct {
	w       io.Writer
	noColor bool

	rankStyle  lipgloss.Style
	valueStyle lipgloss.Style
	noteStyle  lipgloss.Style
}

// NewRenderer creates a Renderer for w. Colors follow the terminal
// capabilities of w; a non-terminal writer gets plain text.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:          w,
		noColor:    opts.NoColor,
		rankStyle:  lr.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		valueStyle: lr.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		noteStyle:  lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return style.Render(text)
}

// Header writes the shell and history length lines, plus the fish note
// when relevant.
func (r *Renderer) Header(h Header) error {
	title := cases.Title(language.English).String(h.Shell.String())
	if _, err := fmt.Fprintf(r.w, "• Current Shell: %s\n", r.paint(r.valueStyle, title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "• History length: %s\n", r.paint(r.valueStyle, strconv.Itoa(h.HistoryLen))); err != nil {
		return err
	}
	if h.Shell == shell.ShellFish {
		if _, err := fmt.Fprintln(r.w, r.paint(r.noteStyle, FishNote)); err != nil {
			return err
		}
	}
	return nil
}

// Chart writes the boxed bar chart for top. An empty top writes
// InsufficientDataMessage instead.
func (r *Renderer) Chart(top []rank.RankedCommand) error {
	if len(top) == 0 {
		_, err := fmt.Fprintln(r.w, r.paint(r.noteStyle, InsufficientDataMessage))
		return err
	}

	maxCount := 0
	for _, rc := range top {
		maxCount = max(maxCount, rc.Count)
	}

	var b strings.Builder
	blank := " ║" + strings.Repeat(" ", innerWidth) + "║\n"

	b.WriteString(" ╔" + strings.Repeat("═", innerWidth) + "╗\n")
	b.WriteString(blank)
	for i, rc := range top {
		num := strconv.Itoa(i + 1)
		suffix := fmt.Sprintf(" (%d times)", rc.Count)
		// "  " + num + ". " + command + suffix must fit innerWidth.
		avail := innerWidth - 2 - len(num) - 2 - len(suffix)
		cmd := DisplayCommand(rc.Command, avail)
		width := 2 + len(num) + 2 + runewidth.StringWidth(cmd) + len(suffix)

		b.WriteString(" ║  ")
		b.WriteString(r.paint(r.rankStyle, num+"."))
		b.WriteString(" " + cmd + suffix)
		b.WriteString(strings.Repeat(" ", max(0, innerWidth-width)))
		b.WriteString("║\n")

		bar := BarLength(rc.Count, maxCount)
		b.WriteString(" ║  ")
		b.WriteString(strings.Repeat(barFull, bar))
		b.WriteString(strings.Repeat(barEmpty, BarWidth-bar))
		b.WriteString("  ║\n")
	}
	b.WriteString(blank)
	b.WriteString(" ╚" + strings.Repeat("═", innerWidth) + "╝\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Render writes the header followed by the chart.
func Render(w io.Writer, h Header, top []rank.RankedCommand, opts Options) error {
	r := NewRenderer(w, opts)
	if err := r.Header(h); err != nil {
		return err
	}
	return r.Chart(top)
}

// BarLength scales count against the largest count so the most frequent
// command fills the whole bar.
func BarLength(count, maxCount int) int {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	return min(BarWidth, count*BarWidth/maxCount)
}

// DisplayCommand shortens a command for the chart. Commands wider than 30
// cells are cut to 30 and suffixed with "..", then cut further if they
// still exceed avail. Tabs and newlines are shown as spaces; other control
// characters (ESC, BEL...) as '?', so nothing reaches the terminal raw.
func DisplayCommand(cmd string, avail int) string {
	cmd = strings.Map(printable, cmd)
	if runewidth.StringWidth(cmd) > maxCommandWidth {
		cmd = runewidth.Truncate(cmd, maxCommandWidth, "") + ".."
	}
	if avail > 0 && runewidth.StringWidth(cmd) > avail {
		cmd = runewidth.Truncate(cmd, avail, "..")
	}
	return cmd
}

func printable(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return ' '
	case unicode.IsControl(r):
		return '?'
	default:
		return r
	}
}
