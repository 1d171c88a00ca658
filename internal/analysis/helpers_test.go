package analysis

import (
	"time"

	"github.com/Veraticus/crux/internal/model"
)

// day builds a record whose weekday, month and week are derived from iso.
func day(iso string, total, news int) model.Record {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	return model.Record{
		Date:               d,
		Weekday:            model.WeekdayOf(d.Weekday()),
		Month:              model.MonthOf(d.Month()),
		Week:               model.IsoWeek(d),
		NewEntries:         news,
		SubscriptionVisits: total / 2,
		MealVisits:         total / 4,
		TotalVisits:        total,
	}
}

// sampleTable spans two months and every weekday.
func sampleTable() *model.Table {
	return model.NewTable([]model.Record{
		day("2025-01-06", 60, 8),   // Mon, W2
		day("2025-01-07", 50, 5),   // Tue
		day("2025-01-08", 70, 9),   // Wed
		day("2025-01-09", 40, 2),   // Thu
		day("2025-01-10", 55, 4),   // Fri
		day("2025-01-11", 130, 20), // Sat
		day("2025-01-12", 110, 15), // Sun
		day("2025-02-03", 61, 9),   // Mon, W6
		day("2025-02-08", 120, 18), // Sat
	})
}

func fullSelection() Selection {
	return Selection{Months: AllMonths(), Weekdays: AllWeekdays()}
}
