// ABOUTME: Bench report rendering: lipgloss-styled table or easyjson-encoded JSON
// ABOUTME: Totals are summed over every pool of every worker

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/textpool-go/pkg/pool"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var statColumns = []string{"pool", "kind", "created", "free", "active", "buckets"}

// allStats flattens every worker's pool stats.
func allStats(results []workerResult) []pool.Stats {
	var out []pool.Stats
	for _, r := range results {
		out = append(out, r.Stats...)
	}
	return out
}

func writeTable(w io.Writer, pooled bool, results []workerResult) error {
	var b strings.Builder

	mode := "pooled"
	if !pooled {
		mode = "unpooled"
	}
	fmt.Fprintf(&b, "%s\n", headerStyle.Render("textpool bench ("+mode+")"))

	for _, r := range results {
		fmt.Fprintf(&b, "\nworker %d: %d layouts, %d lines in %s\n", r.ID, r.Layouts, r.Lines, r.Elapsed)
		if r.Diagnostics > 0 {
			fmt.Fprintf(&b, "%s\n", warnStyle.Render(fmt.Sprintf("%d pool diagnostics", r.Diagnostics)))
		}
		if len(r.Stats) == 0 {
			fmt.Fprintf(&b, "%s\n", dimStyle.Render("no pools"))
			continue
		}
		rows := make([][]string, 0, len(r.Stats))
		for _, s := range r.Stats {
			rows = append(rows, statRow(s))
		}
		b.WriteString(renderTable(statColumns, rows))
	}

	total := pool.Sum(allStats(results))
	fmt.Fprintf(&b, "\n%s created %d, free %d, active %d\n",
		headerStyle.Render("total"), total.Created, total.Free, total.Active)

	_, err := io.WriteString(w, b.String())
	return err
}

func statRow(s pool.Stats) []string {
	buckets := "-"
	if s.Kind == pool.KindArray {
		buckets = strconv.Itoa(s.Buckets)
	}
	return []string{
		s.Name,
		s.Kind,
		strconv.Itoa(s.Created),
		strconv.Itoa(s.Free),
		strconv.Itoa(s.Active),
		buckets,
	}
}

// renderTable pads each column to its widest cell.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i]).Render(c)
		}
		return "  " + strings.Join(parts, "  ") + "\n"
	}

	var b strings.Builder
	b.WriteString(line(headers, headerStyle))
	for _, row := range rows {
		b.WriteString(line(row, lipgloss.NewStyle()))
	}
	return b.String()
}

// MarshalEasyJSON writes r as a JSON object.
func (r workerResult) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.Int(r.ID)
	w.RawString(`,"layouts":`)
	w.Int(r.Layouts)
	w.RawString(`,"lines":`)
	w.Int(r.Lines)
	w.RawString(`,"diagnostics":`)
	w.Int(r.Diagnostics)
	w.RawString(`,"elapsed_ms":`)
	w.Int64(r.Elapsed.Milliseconds())
	w.RawString(`,"pools":[`)
	for i, s := range r.Stats {
		if i > 0 {
			w.RawByte(',')
		}
		s.MarshalEasyJSON(w)
	}
	w.RawString(`]}`)
}

func writeJSON(w io.Writer, pooled bool, results []workerResult) error {
	jw := jwriter.Writer{}
	jw.RawString(`{"pooled":`)
	jw.Bool(pooled)
	jw.RawString(`,"workers":[`)
	for i, r := range results {
		if i > 0 {
			jw.RawByte(',')
		}
		r.MarshalEasyJSON(&jw)
	}
	jw.RawString(`],"total":`)
	pool.Sum(allStats(results)).MarshalEasyJSON(&jw)
	jw.RawString("}\n")
	if jw.Error != nil {
		return fmt.Errorf("encoding report: %w", jw.Error)
	}
	_, err := jw.DumpTo(w)
	return err
}
