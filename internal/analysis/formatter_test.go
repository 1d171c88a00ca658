package analysis

import (
	"testing"

	"github.com/Veraticus/crux/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIFormatter_FormatSummary(t *testing.T) {
	formatter := NewCLIFormatter(nil)

	tests := []struct {
		name        string
		report      *Report
		contains    []string
		notContains []string
	}{
		{
			name:     "nil report",
			report:   nil,
			contains: []string{"No report available"},
		},
		{
			name:   "complete report",
			report: Build(sampleTable(), fullSelection()),
			contains: []string{
				"Attendance Report",
				"06/01/2025 to 08/02/2025",
				"Janvier, Février",
				"696",
				"Samedi (125.0 visits/day)",
				"Jeudi (40.0 visits/day)",
				"Janvier (63 new)",
				"2.14",
				"maintain current weekend programming",
				"Subscription",
			},
			notContains: []string{"boost weekend programming", noData},
		},
		{
			name:   "empty selection",
			report: Build(sampleTable(), Selection{Months: AllMonths()}),
			contains: []string{
				"Weekdays: none",
				"Period: no data",
				"Busiest weekday: no data",
				"Selection matches no days",
				"strengthen acquisition offers",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatter.FormatSummary(tt.report)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestCLIFormatter_FormatDetails(t *testing.T) {
	formatter := NewCLIFormatter(nil)
	report := Build(sampleTable(), fullSelection())

	out := formatter.FormatDetails(report, false)
	assert.Contains(t, out, "W02 (515)")
	assert.Contains(t, out, "Dimanche")
	assert.Contains(t, out, "Février")
	assert.Contains(t, out, "120.0")
	assert.NotContains(t, out, "Daily detail")

	withDaily := formatter.FormatDetails(report, true)
	assert.Contains(t, withDaily, "Daily detail")
	assert.Contains(t, withDaily, "08/02/2025")

	empty := formatter.FormatDetails(Build(sampleTable(), Selection{}), true)
	assert.Contains(t, empty, "By weekday:\n  no data")
}

func TestCLIFormatter_CustomLabels(t *testing.T) {
	names := model.DefaultNames()
	require.NoError(t, names.SetWeekdayLabel(model.Saturday, "Sat"))

	out := NewCLIFormatter(names).FormatSummary(Build(sampleTable(), fullSelection()))
	assert.Contains(t, out, "Sat (125.0 visits/day)")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", sparkline(nil))
	assert.Equal(t, "▁▁▁", sparkline([]int{5, 5, 5}))
	assert.Equal(t, "▁█", sparkline([]int{0, 10}))
	assert.Equal(t, "▁▄█", sparkline([]int{0, 5, 10}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Lundi", truncate("Lundi", 9))
	assert.Equal(t, "Septembre", truncate("Septembre", 9))
	assert.Equal(t, "Sept…", truncate("Septembre", 5))
	assert.Equal(t, "Déc…", truncate("Décembre", 4))
}
