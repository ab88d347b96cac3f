package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"rigwatch/internal/pipeline"
)

// Tab identifiers, in display order. They mirror the monitoring surfaces of
// the original dashboard.
const (
	tabTrends = iota
	tabAlerts
	tabSummary
	tabStats
	tabML
	tabCount
)

var tabNames = [tabCount]string{"Trends", "Alerts", "Summary", "Stats", "ML"}

// Model is the dashboard bubbletea model: one viewport whose content is
// swapped per tab. All content is derived once from a completed pipeline
// run; the dashboard itself holds no mutable analysis state.
type Model struct {
	res       *pipeline.Result
	narrative string
	styles    Styles

	tab      int
	viewport viewport.Model
	content  [tabCount]string
	width    int
	height   int
	ready    bool
}

// New creates a dashboard over one pipeline result.
func New(res *pipeline.Result, narrative string) Model {
	m := Model{
		res:       res,
		narrative: narrative,
		styles:    DefaultStyles(),
		viewport:  viewport.New(80, 24),
	}
	m.content[tabTrends] = renderTrends(res, m.styles, 72)
	m.content[tabAlerts] = renderAlerts(res, m.styles)
	m.content[tabSummary] = renderSummary(narrative, res, m.styles)
	m.content[tabStats] = renderStats(res, m.styles)
	m.content[tabML] = renderML(res, m.styles, 72)
	m.viewport.SetContent(m.content[m.tab])
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.setTab((m.tab + 1) % tabCount)
			return m, nil
		case "shift+tab", "left", "h":
			m.setTab((m.tab + tabCount - 1) % tabCount)
			return m, nil
		case "1", "2", "3", "4", "5":
			m.setTab(int(msg.String()[0] - '1'))
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4 // header + footer
		if !m.ready {
			m.ready = true
			// Re-render charts at the real terminal width.
			m.content[tabTrends] = renderTrends(m.res, m.styles, msg.Width-8)
			m.content[tabML] = renderML(m.res, m.styles, msg.Width-8)
			m.viewport.SetContent(m.content[m.tab])
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setTab(tab int) {
	if tab < 0 || tab >= tabCount {
		return
	}
	m.tab = tab
	m.viewport.SetContent(m.content[tab])
	m.viewport.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabIdle.Render(label))
		}
	}

	header := strings.Join(tabs, " ")
	footer := m.styles.Muted.Render("tab/arrows: switch pages  -  q: quit")
	return header + "\n\n" + m.viewport.View() + "\n" + footer
}

// Run starts the dashboard program and blocks until the user quits.
func Run(res *pipeline.Result, narrative string) error {
	p := tea.NewProgram(New(res, narrative), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
