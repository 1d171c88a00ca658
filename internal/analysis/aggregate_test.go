package analysis

import (
	"testing"

	"github.com/Veraticus/crux/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklySeries(t *testing.T) {
	series := WeeklySeries(sampleTable())
	require.Len(t, series, 2)

	assert.Equal(t, 2, series[0].Week)
	assert.Equal(t, "2025-01-06", series[0].Start.Format("2006-01-02"))
	assert.Equal(t, 515, series[0].TotalVisits)
	assert.Equal(t, 63, series[0].NewEntries)

	assert.Equal(t, 6, series[1].Week)
	assert.Equal(t, 181, series[1].TotalVisits)
}

func TestWeeklySeries_SumsMatchTotals(t *testing.T) {
	table := sampleTable()
	selections := []Selection{
		fullSelection(),
		{Months: []model.Month{model.January}, Weekdays: []model.Weekday{model.Saturday, model.Sunday}},
		{Months: []model.Month{model.February}, Weekdays: AllWeekdays()},
		{},
	}

	for _, sel := range selections {
		filtered := Filter(table, sel)
		var want, got int
		filtered.Each(func(r model.Record) { want += r.TotalVisits })
		for _, p := range WeeklySeries(filtered) {
			got += p.TotalVisits
		}
		assert.Equal(t, want, got)
	}
}

func TestWeeklySeries_MergesWeekAcrossYears(t *testing.T) {
	// 2024-12-30 and 2026-01-01 are both in ISO week 1.
	table := model.NewTable([]model.Record{
		day("2024-12-30", 10, 1),
		day("2025-06-02", 20, 2),
		day("2026-01-01", 30, 3),
	})

	series := WeeklySeries(table)
	require.Len(t, series, 2)
	assert.Equal(t, 1, series[0].Week)
	assert.Equal(t, 40, series[0].TotalVisits)
	assert.Equal(t, "2024-12-30", series[0].Start.Format("2006-01-02"))
}

func TestSplit(t *testing.T) {
	split := Split(model.NewTable([]model.Record{
		{SubscriptionVisits: 6, MealVisits: 3, NewEntries: 1, TotalVisits: 50},
		{SubscriptionVisits: 4, MealVisits: 2, NewEntries: 4, TotalVisits: 50},
	}))
	assert.Equal(t, TypeSplit{SubscriptionVisits: 10, MealVisits: 5, NewEntries: 5}, split)

	sub, meal, news, ok := split.Shares()
	require.True(t, ok)
	assert.InDelta(t, 0.5, sub, 1e-9)
	assert.InDelta(t, 0.25, meal, 1e-9)
	assert.InDelta(t, 0.25, news, 1e-9)

	_, _, _, ok = Split(model.NewTable(nil)).Shares()
	assert.False(t, ok)
}

func TestWeekdayProfile(t *testing.T) {
	profile := WeekdayProfile(sampleTable())
	require.Len(t, profile, 7)

	for i, s := range profile {
		assert.Equal(t, model.Weekdays[i], s.Weekday, "rows follow canonical order")
	}
	assert.Equal(t, 2, profile[0].Days)
	assert.InDelta(t, 60.5, profile[0].MeanTotal, 1e-9)
	assert.InDelta(t, 8.5, profile[0].MeanNew, 1e-9)
	assert.InDelta(t, 125.0, profile[5].MeanTotal, 1e-9)
}

func TestWeekdayProfile_OnlyObservedDays(t *testing.T) {
	table := model.NewTable([]model.Record{
		day("2025-01-12", 10, 1), // Sun
		day("2025-01-08", 20, 2), // Wed
	})
	profile := WeekdayProfile(table)
	require.Len(t, profile, 2)
	assert.Equal(t, model.Wednesday, profile[0].Weekday)
	assert.Equal(t, model.Sunday, profile[1].Weekday)

	assert.Empty(t, WeekdayProfile(model.NewTable(nil)))
}

func TestMonthlyProfile(t *testing.T) {
	profile := MonthlyProfile(sampleTable())
	require.Len(t, profile, 2)

	assert.Equal(t, MonthStat{Month: model.January, Days: 7, TotalVisits: 515, NewEntries: 63, SubscriptionVisits: 257}, profile[0])
	assert.Equal(t, model.February, profile[1].Month)
	assert.Equal(t, 27, profile[1].NewEntries)
}

func TestPivot(t *testing.T) {
	h := Pivot(sampleTable())

	assert.Equal(t, model.Weekdays[:], h.Weekdays)
	assert.Equal(t, []model.Month{model.January, model.February}, h.Months)
	require.Len(t, h.Cells, 7)
	for _, row := range h.Cells {
		assert.Len(t, row, 2)
	}

	mondayFeb := h.At(model.Monday, model.February)
	assert.True(t, mondayFeb.Valid)
	assert.InDelta(t, 61.0, mondayFeb.Mean, 1e-9)

	assert.False(t, h.At(model.Tuesday, model.February).Valid, "missing pair is not zero")
	assert.False(t, h.At(model.Monday, model.July).Valid)
}

func TestPivot_ZeroIsValid(t *testing.T) {
	h := Pivot(model.NewTable([]model.Record{day("2025-01-06", 0, 0)}))
	c := h.At(model.Monday, model.January)
	assert.True(t, c.Valid)
	assert.Zero(t, c.Mean)
}

func TestComputeKPIs(t *testing.T) {
	k := ComputeKPIs(sampleTable())
	assert.Equal(t, 9, k.Days)
	assert.Equal(t, 696, k.TotalVisits)
	assert.InDelta(t, 696.0/9, k.MeanPerDay, 1e-9)
	assert.Equal(t, 90, k.NewEntries)
	assert.Equal(t, 347, k.SubscriptionVisits)
	assert.InDelta(t, 347.0/696*100, k.LoyaltyRate, 1e-9)

	assert.Equal(t, KPIs{}, ComputeKPIs(model.NewTable(nil)))
}

func TestDaily(t *testing.T) {
	daily := Daily(sampleTable())
	require.Len(t, daily, 9)
	assert.Equal(t, "2025-02-08", daily[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-01-06", daily[8].Date.Format("2006-01-02"))
}
