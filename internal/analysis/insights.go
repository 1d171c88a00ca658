package analysis

import "github.com/Veraticus/crux/internal/model"

// BestWeekday returns the weekday with the highest mean total visits.
// Ties go to the earliest weekday in canonical order.
func BestWeekday(profile []WeekdayStat) WeekdayExtreme {
	var best WeekdayExtreme
	for _, s := range profile {
		if !best.OK || s.MeanTotal > best.Mean {
			best = WeekdayExtreme{Weekday: s.Weekday, Mean: s.MeanTotal, OK: true}
		}
	}
	return best
}

// WorstWeekday returns the weekday with the lowest mean total visits.
// Ties go to the earliest weekday in canonical order.
func WorstWeekday(profile []WeekdayStat) WeekdayExtreme {
	var worst WeekdayExtreme
	for _, s := range profile {
		if !worst.OK || s.MeanTotal < worst.Mean {
			worst = WeekdayExtreme{Weekday: s.Weekday, Mean: s.MeanTotal, OK: true}
		}
	}
	return worst
}

// BestAcquisitionMonth returns the month with the most new entries.
// Ties go to the earliest month in canonical order.
func BestAcquisitionMonth(profile []MonthStat) MonthExtreme {
	var best MonthExtreme
	for _, s := range profile {
		if !best.OK || s.NewEntries > best.NewEntries {
			best = MonthExtreme{Month: s.Month, NewEntries: s.NewEntries, OK: true}
		}
	}
	return best
}

// WeekendRatio divides the mean Saturday/Sunday total by the mean Monday–Friday total.
// It is 0 when either side has no rows or the weekday mean is 0.
func WeekendRatio(table *model.Table) float64 {
	var weekendSum, weekendDays, weekSum, weekDays int
	table.Each(func(r model.Record) {
		switch {
		case r.Weekday.IsWeekend():
			weekendSum += r.TotalVisits
			weekendDays++
		case r.Weekday.Valid():
			weekSum += r.TotalVisits
			weekDays++
		}
	})

	if weekDays == 0 || weekSum == 0 || weekendDays == 0 {
		return 0
	}
	weekendMean := float64(weekendSum) / float64(weekendDays)
	weekMean := float64(weekSum) / float64(weekDays)
	return weekendMean / weekMean
}

// NewClientRate is new entries as a percentage of total visits, 0 when there were no visits.
func NewClientRate(table *model.Table) float64 {
	var news, total int
	table.Each(func(r model.Record) {
		news += r.NewEntries
		total += r.TotalVisits
	})
	if total == 0 {
		return 0
	}
	return float64(news) / float64(total) * 100
}

// Derive computes every insight from the filtered table and its profiles.
func Derive(filtered *model.Table, weekdays []WeekdayStat, monthly []MonthStat) Insights {
	return Insights{
		BestWeekday:          BestWeekday(weekdays),
		WorstWeekday:         WorstWeekday(weekdays),
		BestAcquisitionMonth: BestAcquisitionMonth(monthly),
		WeekendRatio:         WeekendRatio(filtered),
		NewClientRate:        NewClientRate(filtered),
	}
}
