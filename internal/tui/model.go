// Package tui is the interactive attendance explorer.
package tui

import (
	"fmt"
	"slices"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/model"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Pane is the picker that receives selection keys.
type Pane int

const (
	PaneMonths Pane = iota
	PaneWeekdays
)

// Model holds the explorer state. Every selection change rebuilds the report
// from the base table.
type Model struct {
	table     *model.Table
	report    *analysis.Report
	formatter *analysis.CLIFormatter
	config    Config
	keymap    KeyMap
	help      help.Model
	sel       analysis.Selection
	months    []model.Month
	cursor    [2]int
	tab       int
	focus     Pane
	notice    string
	width     int
	height    int
	quitting  bool
}

// reloadedMsg carries the result of a ReloadFunc.
type reloadedMsg struct {
	table *model.Table
	err   error
}

// New creates an explorer over table.
func New(table *model.Table, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sel := analysis.DefaultSelection(table)
	if cfg.Selection != nil {
		sel = *cfg.Selection
	}

	months := table.Months()
	if len(months) == 0 {
		months = analysis.AllMonths()
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		table:     table,
		formatter: analysis.NewCLIFormatter(cfg.Names),
		config:    cfg,
		keymap:    DefaultKeyMap(),
		help:      h,
		sel:       sel,
		months:    months,
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.rebuild()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case reloadedMsg:
		return m.applyReload(msg), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Reload):
		return m.reload(false)

	case key.Matches(msg, m.keymap.ForceReload):
		return m.reload(true)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Focus):
		m.focus = 1 - m.focus

	case key.Matches(msg, m.keymap.Up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor[m.focus] < m.paneLen()-1 {
			m.cursor[m.focus]++
		}

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % len(analysis.ViewNames)

	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + len(analysis.ViewNames) - 1) % len(analysis.ViewNames)

	case key.Matches(msg, m.keymap.Toggle):
		if m.focus == PaneMonths {
			m.sel = m.sel.ToggleMonth(m.months[m.cursor[PaneMonths]])
		} else {
			m.sel = m.sel.ToggleWeekday(model.Weekdays[m.cursor[PaneWeekdays]])
		}
		m.rebuild()

	case key.Matches(msg, m.keymap.SelectAll):
		if m.focus == PaneMonths {
			m.sel.Months = append([]model.Month(nil), m.months...)
		} else {
			m.sel.Weekdays = analysis.AllWeekdays()
		}
		m.rebuild()

	case key.Matches(msg, m.keymap.ClearAll):
		if m.focus == PaneMonths {
			m.sel.Months = nil
		} else {
			m.sel.Weekdays = nil
		}
		m.rebuild()

	case key.Matches(msg, m.keymap.Weekend):
		m.sel.Weekdays = []model.Weekday{model.Saturday, model.Sunday}
		m.rebuild()
	}

	return m, nil
}

func (m Model) reload(force bool) (tea.Model, tea.Cmd) {
	if m.config.Reload == nil {
		return m, nil
	}
	m.notice = "reloading…"
	reload := m.config.Reload
	return m, func() tea.Msg {
		table, err := reload(force)
		return reloadedMsg{table: table, err: err}
	}
}

// applyReload swaps in the new table and keeps the selection. Months that
// appear for the first time are added to it.
func (m Model) applyReload(msg reloadedMsg) Model {
	if msg.err != nil {
		m.notice = "reload failed: " + msg.err.Error()
		return m
	}
	if msg.table == m.table {
		m.notice = "source unchanged"
		return m
	}

	months := msg.table.Months()
	if len(months) == 0 {
		months = analysis.AllMonths()
	}
	for _, mo := range months {
		if !slices.Contains(m.months, mo) && !m.sel.HasMonth(mo) {
			m.sel = m.sel.ToggleMonth(mo)
		}
	}

	m.table = msg.table
	m.months = months
	m.cursor[PaneMonths] = min(m.cursor[PaneMonths], len(months)-1)
	m.notice = fmt.Sprintf("reloaded %d days", msg.table.Len())
	m.rebuild()
	return m
}

func (m Model) paneLen() int {
	if m.focus == PaneMonths {
		return len(m.months)
	}
	return len(model.Weekdays)
}

func (m *Model) rebuild() {
	m.report = analysis.Build(m.table, m.sel)
}

// Selection returns the current selection.
func (m Model) Selection() analysis.Selection {
	return m.sel
}

// Report returns the report for the current selection.
func (m Model) Report() *analysis.Report {
	return m.report
}
