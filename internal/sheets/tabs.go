package sheets

import (
	"fmt"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/model"
)

// Tab is the content of one worksheet. The first row is the header.
type Tab struct {
	Title  string
	Values [][]any
}

// BuildTabs lays the report out as one tab per view, Summary first.
func BuildTabs(report *analysis.Report, names *model.Names) []Tab {
	views := analysis.Tabulate(report, names)
	tabs := make([]Tab, 0, len(views))

	for _, v := range views {
		values := make([][]any, 0, len(v.Rows)+1)
		values = append(values, toRow(v.Header))
		for _, row := range v.Rows {
			values = append(values, toRow(row))
		}
		tabs = append(tabs, Tab{Title: v.Name, Values: values})
	}

	if len(tabs) > 0 && tabs[0].Title == analysis.ViewSummary {
		tabs[0].Values = append([][]any{{"Attendance Report", period(report)}, {}}, tabs[0].Values...)
	}
	return tabs
}

func period(report *analysis.Report) string {
	start, end, ok := report.Filtered.DateRange()
	if !ok {
		return "no data"
	}
	return fmt.Sprintf("%s - %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func toRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
