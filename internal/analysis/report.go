package analysis

import (
	"time"

	"github.com/Veraticus/crux/internal/model"
)

// Build filters table by sel and computes every view from the filtered subset.
// Each call starts from scratch; reports never share mutable state.
func Build(table *model.Table, sel Selection) *Report {
	filtered := Filter(table, sel)
	weekdays := WeekdayProfile(filtered)
	monthly := MonthlyProfile(filtered)
	insights := Derive(filtered, weekdays, monthly)

	return &Report{
		GeneratedAt:     time.Now(),
		Selection:       sel.clone(),
		Filtered:        filtered,
		KPIs:            ComputeKPIs(filtered),
		Weekly:          WeeklySeries(filtered),
		Split:           Split(filtered),
		Weekdays:        weekdays,
		Monthly:         monthly,
		Heatmap:         Pivot(filtered),
		Insights:        insights,
		Recommendations: Recommend(insights),
		Daily:           Daily(filtered),
	}
}
