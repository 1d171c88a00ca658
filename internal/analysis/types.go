// Package analysis turns an attendance table into the filtered subset, aggregate
// views and insights shown by every front end.
//
// Everything here is a pure function of its inputs: nothing mutates the base
// table and nothing is shared between reports.
package analysis

import (
	"time"

	"github.com/Veraticus/crux/internal/model"
)

// WeeklyPoint is one row of the weekly series.
// Start is the first date encountered for the week in table order.
type WeeklyPoint struct {
	Start              time.Time `json:"start"`
	Week               int       `json:"week"`
	TotalVisits        int       `json:"total_visits"`
	SubscriptionVisits int       `json:"subscription_visits"`
	MealVisits         int       `json:"meal_visits"`
	NewEntries         int       `json:"new_entries"`
}

// TypeSplit holds the visit-type sums used for the proportion breakdown.
type TypeSplit struct {
	SubscriptionVisits int `json:"subscription_visits"`
	MealVisits         int `json:"meal_visits"`
	NewEntries         int `json:"new_entries"`
}

// Total returns the sum of the three visit types.
func (s TypeSplit) Total() int {
	return s.SubscriptionVisits + s.MealVisits + s.NewEntries
}

// Shares returns each type as a fraction of Total. ok is false when Total is
// zero and the proportions are undefined.
func (s TypeSplit) Shares() (subscription, meal, newEntries float64, ok bool) {
	total := s.Total()
	if total == 0 {
		return 0, 0, 0, false
	}
	t := float64(total)
	return float64(s.SubscriptionVisits) / t, float64(s.MealVisits) / t, float64(s.NewEntries) / t, true
}

// WeekdayStat is one row of the weekday profile.
type WeekdayStat struct {
	Weekday   model.Weekday `json:"weekday"`
	Days      int           `json:"days"`
	MeanTotal float64       `json:"mean_total"`
	MeanNew   float64       `json:"mean_new"`
}

// MonthStat is one row of the monthly profile.
type MonthStat struct {
	Month              model.Month `json:"month"`
	Days               int         `json:"days"`
	TotalVisits        int         `json:"total_visits"`
	NewEntries         int         `json:"new_entries"`
	SubscriptionVisits int         `json:"subscription_visits"`
}

// Cell is one weekday×month pivot value. Valid is false when no day backs it,
// which is different from a day with zero visits.
type Cell struct {
	Mean  float64 `json:"mean"`
	Days  int     `json:"days"`
	Valid bool    `json:"valid"`
}

// Heatmap is the weekday×month pivot of mean total visits.
// Rows and columns are the observed weekdays and months in canonical order.
type Heatmap struct {
	Weekdays []model.Weekday `json:"weekdays"`
	Months   []model.Month   `json:"months"`
	Cells    [][]Cell        `json:"cells"`
}

// At returns the cell for (d, m), or an invalid cell when either is not a row/column.
func (h Heatmap) At(d model.Weekday, m model.Month) Cell {
	for i, wd := range h.Weekdays {
		if wd != d {
			continue
		}
		for j, mo := range h.Months {
			if mo == m {
				return h.Cells[i][j]
			}
		}
	}
	return Cell{}
}

// KPIs are the headline figures of a selection.
type KPIs struct {
	Days               int     `json:"days"`
	TotalVisits        int     `json:"total_visits"`
	MeanPerDay         float64 `json:"mean_per_day"`
	NewEntries         int     `json:"new_entries"`
	SubscriptionVisits int     `json:"subscription_visits"`
	LoyaltyRate        float64 `json:"loyalty_rate"`
}

// WeekdayExtreme is a best or worst weekday. OK is false when there was no data.
type WeekdayExtreme struct {
	Weekday model.Weekday `json:"weekday"`
	Mean    float64       `json:"mean"`
	OK      bool          `json:"ok"`
}

// MonthExtreme is the best acquisition month. OK is false when there was no data.
type MonthExtreme struct {
	Month      model.Month `json:"month"`
	NewEntries int         `json:"new_entries"`
	OK         bool        `json:"ok"`
}

// Insights are the derived facts that drive recommendations.
type Insights struct {
	BestWeekday          WeekdayExtreme `json:"best_weekday"`
	WorstWeekday         WeekdayExtreme `json:"worst_weekday"`
	BestAcquisitionMonth MonthExtreme   `json:"best_acquisition_month"`
	WeekendRatio         float64        `json:"weekend_ratio"`
	NewClientRate        float64        `json:"new_client_rate"`
}

// Report is everything computed for one selection.
type Report struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	Filtered        *model.Table     `json:"-"`
	Selection       Selection        `json:"selection"`
	KPIs            KPIs             `json:"kpis"`
	Split           TypeSplit        `json:"type_split"`
	Heatmap         Heatmap          `json:"heatmap"`
	Insights        Insights         `json:"insights"`
	Weekly          []WeeklyPoint    `json:"weekly"`
	Weekdays        []WeekdayStat    `json:"weekdays"`
	Monthly         []MonthStat      `json:"monthly"`
	Recommendations []Recommendation `json:"recommendations"`
	Daily           []model.Record   `json:"daily"`
}
