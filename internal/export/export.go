// Package export renders a ranking report in machine-readable or tabular
// formats.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/chazuruo/topcmds/internal/rank"
	"github.com/rodaine/table"
	"gopkg.in/yaml.v3"
)

// Format represents the export format.
type Format string

const (
	// FormatChart is the boxed bar chart (rendered by package chart).
	FormatChart Format = "chart"
	// FormatTable renders an aligned text table.
	FormatTable Format = "table"
	// FormatMarkdown renders a Markdown table.
	FormatMarkdown Format = "md"
	// FormatJSON exports as JSON.
	FormatJSON Format = "json"
	// FormatYAML exports as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML exports as TOML.
	FormatTOML Format = "toml"
)

// Formats lists every accepted --format value.
var Formats = []Format{FormatChart, FormatTable, FormatMarkdown, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid format: %s (must be one of %s)", s, strings.Join(names, ", "))
}

// Entry is one ranked command with its position and share of history.
type Entry struct {
	Rank    int     `json:"rank" yaml:"rank" toml:"rank"`
	Command string  `json:"command" yaml:"command" toml:"command"`
	Count   int     `json:"count" yaml:"count" toml:"count"`
	Share   float64 `json:"share" yaml:"share" toml:"share"`
}

// Report is the serializable result of one run.
type Report struct {
	Shell         string  `json:"shell" yaml:"shell" toml:"shell"`
	Method        string  `json:"method,omitempty" yaml:"method,omitempty" toml:"method,omitempty"`
	HistoryFile   string  `json:"history_file,omitempty" yaml:"history_file,omitempty" toml:"history_file,omitempty"`
	HistoryLength int     `json:"history_length" yaml:"history_length" toml:"history_length"`
	Limit         int     `json:"limit" yaml:"limit" toml:"limit"`
	Commands      []Entry `json:"commands" yaml:"commands" toml:"commands"`
}

// Entries converts a ranking into report entries. Shares are relative to
// historyLen, the number of commands parsed.
func Entries(top []rank.RankedCommand, historyLen int) []Entry {
	entries := make([]Entry, len(top))
	for i, rc := range top {
		entries[i] = Entry{
			Rank:    i + 1,
			Command: rc.Command,
			Count:   rc.Count,
			Share:   rank.Share(rc.Count, historyLen),
		}
	}
	return entries
}

// Exporter writes reports in one format.
type Exporter struct {
	format   Format
	template *template.Template
}

// NewExporter creates a new exporter. FormatChart is not handled here.
func NewExporter(format Format) (*Exporter, error) {
	e := &Exporter{format: format}

	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatTOML:
	case FormatMarkdown:
		tmpl, err := template.New("export").Funcs(template.FuncMap{
			"percent": percent,
			"cell":    markdownCell,
		}).Parse(builtinMarkdownTemplate)
		if err != nil {
			return nil, fmt.Errorf("parsing markdown template: %w", err)
		}
		e.template = tmpl
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return e, nil
}

// Format returns the exporter's format.
func (e *Exporter) Format() Format {
	return e.format
}

// Export writes r to w.
func (e *Exporter) Export(w io.Writer, r *Report) error {
	if r.Commands == nil {
		r.Commands = []Entry{}
	}

	switch e.format {
	case FormatTable:
		return writeTable(w, r)
	case FormatMarkdown:
		if err := e.template.Execute(w, r); err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(r); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", e.format)
	}
}

// ExportToFile writes r to path.
func (e *Exporter) ExportToFile(r *Report, path string) error {
	var buf bytes.Buffer
	if err := e.Export(&buf, r); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, r *Report) error {
	tbl := table.New("#", "Command", "Count", "Share").WithWriter(w)
	for _, e := range r.Commands {
		tbl.AddRow(e.Rank, e.Command, e.Count, percent(e.Share))
	}
	tbl.Print()
	return nil
}

func percent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// markdownCell escapes pipes and wraps the command in a code span.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}

// builtinMarkdownTemplate is the default Markdown template.
const builtinMarkdownTemplate = "# Top commands ({{.Shell}})\n\n" +
	"History length: {{.HistoryLength}}\n\n" +
	"{{if .Commands}}| # | Command | Count | Share |\n|---|---------|------:|------:|\n" +
	"{{range .Commands}}| {{.Rank}} | {{cell .Command}} | {{.Count}} | {{percent .Share}} |\n{{end}}" +
	"{{else}}_Insufficient data._\n{{end}}"
