package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *model.Table {
	day := func(iso string, total int) model.Record {
		d, _ := time.Parse("2006-01-02", iso)
		return model.Record{
			Date: d, Weekday: model.WeekdayOf(d.Weekday()), Month: model.MonthOf(d.Month()),
			Week: model.IsoWeek(d), TotalVisits: total, NewEntries: total / 10,
		}
	}
	return model.NewTable([]model.Record{
		day("2025-01-06", 60),  // Lundi
		day("2025-01-11", 130), // Samedi
		day("2025-02-03", 61),  // Lundi
		day("2025-02-09", 110), // Dimanche
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update in order.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestNew_DefaultSelection(t *testing.T) {
	m := New(testTable())

	assert.Equal(t, []model.Month{model.January, model.February}, m.Selection().Months)
	assert.Equal(t, analysis.AllWeekdays(), m.Selection().Weekdays)
	assert.Equal(t, 4, m.Report().KPIs.Days)
	assert.Nil(t, m.Init())
}

func TestNew_WithSelection(t *testing.T) {
	sel := analysis.Selection{Months: []model.Month{model.February}, Weekdays: analysis.AllWeekdays()}
	m := New(testTable(), WithSelection(sel))
	assert.Equal(t, 2, m.Report().KPIs.Days)
}

func TestUpdate_ToggleMonthRebuilds(t *testing.T) {
	m := New(testTable())

	// Cursor starts on January.
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []model.Month{model.February}, m.Selection().Months)
	assert.Equal(t, 2, m.Report().KPIs.Days)
	assert.Equal(t, 171, m.Report().KPIs.TotalVisits)

	m = send(t, m, runes("x"))
	assert.Equal(t, 4, m.Report().KPIs.Days)
}

func TestUpdate_ToggleWeekday(t *testing.T) {
	m := New(testTable())

	// Focus weekdays and untick Monday.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("x"))
	assert.False(t, m.Selection().HasWeekday(model.Monday))
	assert.Equal(t, 2, m.Report().KPIs.Days)

	// Move to Saturday and untick it.
	m = send(t, m, runes("j"), runes("j"), runes("j"), runes("j"), runes("j"), runes("x"))
	assert.False(t, m.Selection().HasWeekday(model.Saturday))
	assert.Equal(t, 1, m.Report().KPIs.Days)
}

func TestUpdate_CursorBounds(t *testing.T) {
	m := New(testTable())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor[PaneMonths])

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor[PaneMonths], "only two months are present")
}

func TestUpdate_BulkSelection(t *testing.T) {
	m := New(testTable())

	m = send(t, m, runes("n"))
	assert.Empty(t, m.Selection().Months)
	assert.Zero(t, m.Report().KPIs.Days)
	assert.False(t, m.Report().Insights.BestWeekday.OK)

	m = send(t, m, runes("a"), runes("w"))
	assert.Equal(t, []model.Weekday{model.Saturday, model.Sunday}, m.Selection().Weekdays)
	assert.Equal(t, 2, m.Report().KPIs.Days)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("a"))
	assert.Equal(t, analysis.AllWeekdays(), m.Selection().Weekdays)
}

func TestUpdate_Tabs(t *testing.T) {
	m := New(testTable())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, len(analysis.ViewNames)-1, m.tab)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.tab)
}

func TestUpdate_Quit(t *testing.T) {
	m := New(testTable())
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := send(t, New(testTable()), tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 40, m.height)
}

func TestView(t *testing.T) {
	m := New(testTable(), WithSize(140, 40))
	out := m.View()

	assert.Contains(t, out, "Janvier")
	assert.Contains(t, out, "Dimanche")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "4/4 days selected")
	assert.Contains(t, out, "Recommendations")

	// Heatmap view.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Contains(t, m.View(), "weekday × month")

	m = send(t, m, runes("n"))
	out = m.View()
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "0/4 days selected")
	assert.Contains(t, out, "no data")
}

func TestView_Help(t *testing.T) {
	m := New(testTable(), WithSize(140, 40))
	assert.NotContains(t, m.View(), "weekends only")
	m = send(t, m, runes("?"))
	assert.Contains(t, m.View(), "weekends only")
}

func TestUpdate_Reload(t *testing.T) {
	base := testTable()
	grown := model.NewTable(append(base.Records(), model.Record{
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Weekday:     model.Saturday,
		Month:       model.March,
		Week:        9,
		TotalVisits: 150,
	}))

	next := grown
	m := New(base, WithReload(func(bool) (*model.Table, error) { return next, nil }))

	updated, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	m = send(t, updated.(Model), cmd())

	assert.Equal(t, 5, m.Report().KPIs.Days)
	assert.Equal(t, []model.Month{model.January, model.February, model.March}, m.Selection().Months)
	assert.Contains(t, m.View(), "reloaded 5 days")

	// Same table pointer means the cache saw no change.
	updated, cmd = m.Update(runes("r"))
	m = send(t, updated.(Model), cmd())
	assert.Contains(t, m.View(), "source unchanged")
}

func TestUpdate_ReloadKeepsDeselectedMonths(t *testing.T) {
	m := New(testTable(), WithReload(func(bool) (*model.Table, error) {
		return model.NewTable(testTable().Records()), nil
	}))

	// Deselect January, then reload a copy of the same data.
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []model.Month{model.February}, m.Selection().Months)

	updated, cmd := m.Update(runes("r"))
	m = send(t, updated.(Model), cmd())
	assert.Equal(t, []model.Month{model.February}, m.Selection().Months)
}

func TestUpdate_ReloadError(t *testing.T) {
	m := New(testTable(), WithReload(func(bool) (*model.Table, error) {
		return nil, errors.New("disk on fire")
	}))

	updated, cmd := m.Update(runes("r"))
	m = send(t, updated.(Model), cmd())
	assert.Equal(t, 4, m.Report().KPIs.Days)
	assert.Contains(t, m.View(), "reload failed: disk on fire")
}

func TestUpdate_ReloadDisabled(t *testing.T) {
	m := New(testTable())
	_, cmd := m.Update(runes("r"))
	assert.Nil(t, cmd)
}

func TestUpdate_ForceReload(t *testing.T) {
	var forced []bool
	base := testTable()
	m := New(base, WithReload(func(force bool) (*model.Table, error) {
		forced = append(forced, force)
		if force {
			return model.NewTable(base.Records()), nil
		}
		return base, nil
	}))

	updated, cmd := m.Update(runes("r"))
	m = send(t, updated.(Model), cmd())
	assert.Contains(t, m.View(), "source unchanged")

	updated, cmd = m.Update(runes("R"))
	require.NotNil(t, cmd)
	m = send(t, updated.(Model), cmd())
	assert.Contains(t, m.View(), "reloaded 4 days")
	assert.Equal(t, []bool{false, true}, forced)
}
