package analysis

import "github.com/Veraticus/crux/internal/model"

// Filter returns the records of table whose month and weekday are both selected,
// in their original order. An empty dimension yields an empty table.
func Filter(table *model.Table, sel Selection) *model.Table {
	var months [13]bool
	for _, m := range sel.Months {
		if m.Valid() {
			months[m] = true
		}
	}
	var days [8]bool
	for _, d := range sel.Weekdays {
		if d.Valid() {
			days[d] = true
		}
	}

	var kept []model.Record
	table.Each(func(r model.Record) {
		if r.Month.Valid() && months[r.Month] && r.Weekday.Valid() && days[r.Weekday] {
			kept = append(kept, r)
		}
	})
	return model.NewTable(kept)
}
