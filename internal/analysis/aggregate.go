package analysis

import (
	"slices"

	"github.com/Veraticus/crux/internal/model"
)

// WeeklySeries groups records by ISO week number, ordered by week.
// Weeks from different years that share a number fall into the same group.
func WeeklySeries(table *model.Table) []WeeklyPoint {
	byWeek := make(map[int]*WeeklyPoint)
	var weeks []int

	table.Each(func(r model.Record) {
		p, ok := byWeek[r.Week]
		if !ok {
			p = &WeeklyPoint{Week: r.Week, Start: r.Date}
			byWeek[r.Week] = p
			weeks = append(weeks, r.Week)
		}
		p.TotalVisits += r.TotalVisits
		p.SubscriptionVisits += r.SubscriptionVisits
		p.MealVisits += r.MealVisits
		p.NewEntries += r.NewEntries
	})

	slices.Sort(weeks)
	series := make([]WeeklyPoint, 0, len(weeks))
	for _, w := range weeks {
		series = append(series, *byWeek[w])
	}
	return series
}

// Split sums the three visit types over table.
func Split(table *model.Table) TypeSplit {
	var s TypeSplit
	table.Each(func(r model.Record) {
		s.SubscriptionVisits += r.SubscriptionVisits
		s.MealVisits += r.MealVisits
		s.NewEntries += r.NewEntries
	})
	return s
}

// WeekdayProfile averages total visits and new entries per weekday, in canonical
// order. Weekdays without records produce no row.
func WeekdayProfile(table *model.Table) []WeekdayStat {
	var (
		days  [7]int
		total [7]int
		news  [7]int
	)
	table.Each(func(r model.Record) {
		i := r.Weekday.Index()
		if i < 0 {
			return
		}
		days[i]++
		total[i] += r.TotalVisits
		news[i] += r.NewEntries
	})

	var profile []WeekdayStat
	for i, d := range model.Weekdays {
		if days[i] == 0 {
			continue
		}
		profile = append(profile, WeekdayStat{
			Weekday:   d,
			Days:      days[i],
			MeanTotal: float64(total[i]) / float64(days[i]),
			MeanNew:   float64(news[i]) / float64(days[i]),
		})
	}
	return profile
}

// MonthlyProfile sums visits per month, in canonical order. Months without
// records produce no row.
func MonthlyProfile(table *model.Table) []MonthStat {
	var stats [12]MonthStat
	table.Each(func(r model.Record) {
		i := r.Month.Index()
		if i < 0 {
			return
		}
		s := &stats[i]
		s.Days++
		s.TotalVisits += r.TotalVisits
		s.NewEntries += r.NewEntries
		s.SubscriptionVisits += r.SubscriptionVisits
	})

	var profile []MonthStat
	for i, m := range model.Months {
		if stats[i].Days == 0 {
			continue
		}
		stats[i].Month = m
		profile = append(profile, stats[i])
	}
	return profile
}

// Pivot averages total visits for every observed (weekday, month) pair.
func Pivot(table *model.Table) Heatmap {
	var (
		days  [7][12]int
		total [7][12]int
		rows  [7]bool
		cols  [12]bool
	)
	table.Each(func(r model.Record) {
		i, j := r.Weekday.Index(), r.Month.Index()
		if i < 0 || j < 0 {
			return
		}
		days[i][j]++
		total[i][j] += r.TotalVisits
		rows[i], cols[j] = true, true
	})

	var h Heatmap
	var colIdx []int
	for j, m := range model.Months {
		if cols[j] {
			h.Months = append(h.Months, m)
			colIdx = append(colIdx, j)
		}
	}
	for i, d := range model.Weekdays {
		if !rows[i] {
			continue
		}
		h.Weekdays = append(h.Weekdays, d)
		row := make([]Cell, len(colIdx))
		for k, j := range colIdx {
			if n := days[i][j]; n > 0 {
				row[k] = Cell{Mean: float64(total[i][j]) / float64(n), Days: n, Valid: true}
			}
		}
		h.Cells = append(h.Cells, row)
	}
	return h
}

// ComputeKPIs returns the headline figures for table.
func ComputeKPIs(table *model.Table) KPIs {
	var k KPIs
	table.Each(func(r model.Record) {
		k.Days++
		k.TotalVisits += r.TotalVisits
		k.NewEntries += r.NewEntries
		k.SubscriptionVisits += r.SubscriptionVisits
	})
	if k.Days > 0 {
		k.MeanPerDay = float64(k.TotalVisits) / float64(k.Days)
	}
	if k.TotalVisits > 0 {
		k.LoyaltyRate = float64(k.SubscriptionVisits) / float64(k.TotalVisits) * 100
	}
	return k
}

// Daily returns the records of table, most recent first.
func Daily(table *model.Table) []model.Record {
	records := table.Records()
	slices.SortStableFunc(records, func(a, b model.Record) int {
		return b.Date.Compare(a.Date)
	})
	return records
}
