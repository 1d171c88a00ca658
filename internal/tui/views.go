package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const pickerWidth = 18

// View renders the explorer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.config.Theme
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Title.Render("🧗 crux"),
		"  ",
		m.renderTabs(),
	)

	pickers := lipgloss.JoinVertical(lipgloss.Left,
		m.renderMonthPicker(),
		m.renderWeekdayPicker(),
	)

	bodyWidth := max(m.width-pickerWidth-6, 20)
	body := lipgloss.NewStyle().
		Width(bodyWidth).
		Render(m.formatter.FormatSection(m.report, analysis.ViewNames[m.tab]))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, pickers, "  ", body),
		"",
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderTabs() string {
	theme := m.config.Theme
	tabs := make([]string, 0, len(analysis.ViewNames))
	for i, name := range analysis.ViewNames {
		if i == m.tab {
			tabs = append(tabs, theme.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, theme.Tab.Render(name))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderMonthPicker() string {
	items := make([]string, len(m.months))
	checked := make([]bool, len(m.months))
	for i, mo := range m.months {
		items[i] = m.config.Names.MonthLabel(mo)
		checked[i] = m.sel.HasMonth(mo)
	}
	return m.renderPicker("Months", PaneMonths, items, checked)
}

func (m Model) renderWeekdayPicker() string {
	items := make([]string, len(model.Weekdays))
	checked := make([]bool, len(model.Weekdays))
	for i, d := range model.Weekdays {
		items[i] = m.config.Names.WeekdayLabel(d)
		checked[i] = m.sel.HasWeekday(d)
	}
	return m.renderPicker("Weekdays", PaneWeekdays, items, checked)
}

func (m Model) renderPicker(title string, pane Pane, items []string, checked []bool) string {
	theme := m.config.Theme
	active := m.focus == pane

	lines := []string{theme.Subtitle.Render(title)}
	for i, item := range items {
		box := theme.Unchecked.Render("[ ]")
		if checked[i] {
			box = theme.Checked.Render("[x]")
		}
		label := item
		if active && i == m.cursor[pane] {
			label = theme.Selected.Render(item)
		}
		lines = append(lines, box+" "+label)
	}

	style := theme.Pane
	if active {
		style = theme.ActivePane
	}
	return style.Width(pickerWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	k := m.report.KPIs
	status := fmt.Sprintf("%d/%d days selected · %d visits", k.Days, m.table.Len(), k.TotalVisits)
	if m.notice != "" {
		status += " · " + m.notice
	}
	return m.config.Theme.StatusInfo.Render(status)
}
