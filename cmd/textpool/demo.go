// ABOUTME: demo subcommand: interactive churn loop built on bubbletea
// ABOUTME: Space creates or destroys a batch of instances; every tick relays them out

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/textpool-go/internal/config"
	"github.com/mauromedda/textpool-go/pkg/layout"
	"github.com/mauromedda/textpool-go/pkg/pool"
	"github.com/mauromedda/textpool-go/pkg/textinfo"
)

const frameInterval = time.Second / 30

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type demoModel struct {
	reg   *pool.Registry
	eng   *layout.Engine
	text  string
	count int

	live        []*textinfo.TextInfo
	frames      int
	toggles     int
	diagnostics int
	quitting    bool
}

func newDemoModel(a demoArgs, s *config.Settings) *demoModel {
	m := &demoModel{
		eng:   layout.NewEngine(a.width, s.LinesPerPage),
		text:  a.text,
		count: a.instances,
	}
	m.reg = newRegistry(s, func(error) { m.diagnostics++ })
	return m
}

func (m *demoModel) Init() tea.Cmd {
	return frameTick()
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.destroy()
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.toggle()
		}
	case tea.WindowSizeMsg:
		m.eng.MaxWidth = max(msg.Width-2, 8)
	case frameMsg:
		m.frames++
		m.relayout()
		return m, frameTick()
	}
	return m, nil
}

// toggle creates a batch of instances when none are live, otherwise
// releases them all.
func (m *demoModel) toggle() {
	m.toggles++
	if len(m.live) > 0 {
		m.destroy()
		return
	}
	for range m.count {
		ti := textinfo.New(m.reg)
		m.eng.Layout(ti, m.frameText())
		m.live = append(m.live, ti)
	}
}

func (m *demoModel) destroy() {
	for i, ti := range m.live {
		ti.Release()
		m.live[i] = nil
	}
	m.live = m.live[:0]
}

func (m *demoModel) relayout() {
	text := m.frameText()
	for _, ti := range m.live {
		m.eng.Layout(ti, text)
	}
}

// frameText varies the text length every frame so buffers grow and shrink.
func (m *demoModel) frameText() string {
	n := m.frames % 4
	return m.text + strings.Repeat(" tick", n)
}

func (m *demoModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("textpool demo"))
	b.WriteString(dimStyle.Render("  space: create/destroy  q: quit"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "frame %d  live %d  toggles %d\n", m.frames, len(m.live), m.toggles)
	if m.diagnostics > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d pool diagnostics", m.diagnostics)))
		b.WriteString("\n")
	}

	if m.reg == nil {
		b.WriteString(dimStyle.Render("pooling disabled"))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, m.reg.Len())
		for _, s := range m.reg.Stats() {
			rows = append(rows, statRow(s))
		}
		b.WriteString("\n")
		b.WriteString(renderTable(statColumns, rows))
	}

	if len(m.live) > 0 {
		ti := m.live[0]
		b.WriteString("\n")
		for i := range min(ti.LineCount, 4) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("%2d ", i+1)))
			b.WriteString(ti.LineText(i))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func runDemo(args []string, s *config.Settings, stderr io.Writer) error {
	a, err := parseDemoFlags(args, s, stderr)
	if err != nil {
		return err
	}

	m := newDemoModel(a, s)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	m.destroy()
	m.reg.Drain()
	fmt.Fprintf(stderr, "demo: %d frames, %d toggles, %d diagnostics\n", m.frames, m.toggles, m.diagnostics)
	return nil
}
