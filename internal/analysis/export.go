package analysis

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/crux/internal/model"
)

// View names accepted by Tabulate consumers.
const (
	ViewSummary  = "Summary"
	ViewWeekly   = "Weekly"
	ViewWeekdays = "Weekdays"
	ViewMonths   = "Months"
	ViewHeatmap  = "Heatmap"
	ViewDaily    = "Daily"
)

// ViewNames lists every tabular view in export order.
var ViewNames = []string{ViewSummary, ViewWeekly, ViewWeekdays, ViewMonths, ViewHeatmap, ViewDaily}

// TabularView is one report section flattened to string cells.
type TabularView struct {
	Name   string
	Header []string
	Rows   [][]string
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteCSV writes one tabular view as CSV with a header row.
func WriteCSV(w io.Writer, view TabularView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(view.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(view.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// Tabulate flattens every section of report, labeling weekdays and months through names.
func Tabulate(report *Report, names *model.Names) []TabularView {
	if names == nil {
		names = model.DefaultNames()
	}
	return []TabularView{
		summaryView(report, names),
		weeklyView(report),
		weekdaysView(report, names),
		monthsView(report, names),
		heatmapView(report, names),
		dailyView(report, names),
	}
}

// View returns the named view, or false when name is not one of ViewNames.
func View(report *Report, names *model.Names, name string) (TabularView, bool) {
	for _, v := range Tabulate(report, names) {
		if v.Name == name {
			return v, true
		}
	}
	return TabularView{}, false
}

func summaryView(report *Report, names *model.Names) TabularView {
	k, ins := report.KPIs, report.Insights

	weekday := func(e WeekdayExtreme) string {
		if !e.OK {
			return noData
		}
		return names.WeekdayLabel(e.Weekday)
	}
	month := noData
	if ins.BestAcquisitionMonth.OK {
		month = names.MonthLabel(ins.BestAcquisitionMonth.Month)
	}

	rows := [][]string{
		{"Days", strconv.Itoa(k.Days)},
		{"Total visits", strconv.Itoa(k.TotalVisits)},
		{"Mean visits per day", formatFloat(k.MeanPerDay)},
		{"New entries", strconv.Itoa(k.NewEntries)},
		{"Subscription visits", strconv.Itoa(k.SubscriptionVisits)},
		{"Loyalty rate (%)", formatFloat(k.LoyaltyRate)},
		{"Busiest weekday", weekday(ins.BestWeekday)},
		{"Quietest weekday", weekday(ins.WorstWeekday)},
		{"Best acquisition month", month},
		{"Weekend ratio", formatFloat(ins.WeekendRatio)},
		{"New client rate (%)", formatFloat(ins.NewClientRate)},
	}
	for _, r := range report.Recommendations {
		rows = append(rows, []string{"Recommendation", r.Title})
	}
	return TabularView{Name: ViewSummary, Header: []string{"Metric", "Value"}, Rows: rows}
}

func weeklyView(report *Report) TabularView {
	rows := make([][]string, 0, len(report.Weekly))
	for _, p := range report.Weekly {
		rows = append(rows, []string{
			strconv.Itoa(p.Week),
			p.Start.Format("2006-01-02"),
			strconv.Itoa(p.TotalVisits),
			strconv.Itoa(p.SubscriptionVisits),
			strconv.Itoa(p.MealVisits),
			strconv.Itoa(p.NewEntries),
		})
	}
	return TabularView{
		Name:   ViewWeekly,
		Header: []string{"Week", "Start", "Total", "Subscription", "Meals", "New"},
		Rows:   rows,
	}
}

func weekdaysView(report *Report, names *model.Names) TabularView {
	rows := make([][]string, 0, len(report.Weekdays))
	for _, s := range report.Weekdays {
		rows = append(rows, []string{
			names.WeekdayLabel(s.Weekday),
			strconv.Itoa(s.Days),
			formatFloat(s.MeanTotal),
			formatFloat(s.MeanNew),
		})
	}
	return TabularView{
		Name:   ViewWeekdays,
		Header: []string{"Weekday", "Days", "Mean total", "Mean new"},
		Rows:   rows,
	}
}

func monthsView(report *Report, names *model.Names) TabularView {
	rows := make([][]string, 0, len(report.Monthly))
	for _, s := range report.Monthly {
		rows = append(rows, []string{
			names.MonthLabel(s.Month),
			strconv.Itoa(s.Days),
			strconv.Itoa(s.TotalVisits),
			strconv.Itoa(s.NewEntries),
			strconv.Itoa(s.SubscriptionVisits),
		})
	}
	return TabularView{
		Name:   ViewMonths,
		Header: []string{"Month", "Days", "Total", "New", "Subscription"},
		Rows:   rows,
	}
}

// heatmapView leaves missing pairs as empty cells.
func heatmapView(report *Report, names *model.Names) TabularView {
	h := report.Heatmap
	header := make([]string, 0, len(h.Months)+1)
	header = append(header, "Weekday")
	for _, m := range h.Months {
		header = append(header, names.MonthLabel(m))
	}

	rows := make([][]string, 0, len(h.Weekdays))
	for i, d := range h.Weekdays {
		row := make([]string, 0, len(h.Months)+1)
		row = append(row, names.WeekdayLabel(d))
		for _, c := range h.Cells[i] {
			if c.Valid {
				row = append(row, formatFloat(c.Mean))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return TabularView{Name: ViewHeatmap, Header: header, Rows: rows}
}

func dailyView(report *Report, names *model.Names) TabularView {
	rows := make([][]string, 0, len(report.Daily))
	for _, r := range report.Daily {
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"),
			names.WeekdayLabel(r.Weekday),
			names.MonthLabel(r.Month),
			strconv.Itoa(r.Week),
			strconv.Itoa(r.NewEntries),
			strconv.Itoa(r.SubscriptionVisits),
			strconv.Itoa(r.MealVisits),
			strconv.Itoa(r.TotalVisits),
		})
	}
	return TabularView{
		Name:   ViewDaily,
		Header: []string{"Date", "Weekday", "Month", "Week", "New", "Subscription", "Meals", "Total"},
		Rows:   rows,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
