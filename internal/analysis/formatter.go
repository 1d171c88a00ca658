package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/crux/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const noData = "no data"

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// CLIFormatter renders reports for terminal display.
type CLIFormatter struct {
	styles *Styles
	names  *model.Names
}

// NewCLIFormatter creates a formatter that labels weekdays and months through names.
// A nil names uses the defaults.
func NewCLIFormatter(names *model.Names) *CLIFormatter {
	if names == nil {
		names = model.DefaultNames()
	}
	return &CLIFormatter{
		styles: NewStyles(),
		names:  names,
	}
}

// WithWidth returns a formatter whose boxes fit a terminal of the given width.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width), names: f.names}
}

// FormatSummary renders the headline sections: KPIs, type split, insights and recommendations.
func (f *CLIFormatter) FormatSummary(report *Report) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}

	sections := []string{
		f.formatHeader(report),
		f.formatKPIs(report.KPIs),
		f.formatSplit(report.Split),
		f.formatInsights(report.Insights),
		f.formatRecommendations(report.Recommendations),
	}
	return strings.Join(sections, "\n\n")
}

// FormatDetails renders the aggregate tables and, when daily is set, the per-day rows.
func (f *CLIFormatter) FormatDetails(report *Report, daily bool) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}

	sections := []string{
		f.formatWeekly(report.Weekly),
		f.formatWeekdays(report.Weekdays),
		f.formatMonthly(report.Monthly),
		f.formatHeatmap(report.Heatmap),
	}
	if daily {
		sections = append(sections, f.formatDaily(report.Daily))
	}
	return strings.Join(sections, "\n\n")
}

// Format renders the summary followed by the details.
func (f *CLIFormatter) Format(report *Report, daily bool) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}
	return f.FormatSummary(report) + "\n\n" + f.FormatDetails(report, daily)
}

// FormatSection renders one named view (see ViewNames). Unknown names render the summary.
func (f *CLIFormatter) FormatSection(report *Report, view string) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}

	switch view {
	case ViewWeekly:
		return f.formatWeekly(report.Weekly) + "\n\n" + f.formatSplit(report.Split)
	case ViewWeekdays:
		return f.formatWeekdays(report.Weekdays)
	case ViewMonths:
		return f.formatMonthly(report.Monthly)
	case ViewHeatmap:
		return f.formatHeatmap(report.Heatmap)
	case ViewDaily:
		return f.formatDaily(report.Daily)
	default:
		return strings.Join([]string{
			f.formatKPIs(report.KPIs),
			f.formatInsights(report.Insights),
			f.formatRecommendations(report.Recommendations),
		}, "\n\n")
	}
}

func (f *CLIFormatter) formatHeader(report *Report) string {
	title := f.styles.Title.Render("🧗 Attendance Report")

	var period string
	if start, end, ok := report.Filtered.DateRange(); ok {
		period = fmt.Sprintf("Period: %s to %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	} else {
		period = "Period: " + noData
	}

	months := make([]string, 0, len(report.Selection.Months))
	for _, m := range report.Selection.Months {
		months = append(months, f.names.MonthLabel(m))
	}
	days := make([]string, 0, len(report.Selection.Weekdays))
	for _, d := range report.Selection.Weekdays {
		days = append(days, f.names.WeekdayLabel(d))
	}

	lines := []string{
		title,
		f.styles.Subtitle.Render(period),
		f.styles.Subtle.Render("Months: " + joinOrNone(months)),
		f.styles.Subtle.Render("Weekdays: " + joinOrNone(days)),
		f.styles.Subtle.Render("Generated: " + report.GeneratedAt.Format(time.RFC3339)),
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatKPIs(k KPIs) string {
	figure := func(label, value string) string {
		return f.styles.Subtle.Render(label) + "\n" + f.styles.Figure.Render(value)
	}

	cells := []string{
		figure("Total visits", fmt.Sprintf("%d", k.TotalVisits)),
		figure("Mean / day", fmt.Sprintf("%.1f", k.MeanPerDay)),
		figure("New entries", fmt.Sprintf("%d", k.NewEntries)),
		figure("Subscriptions", fmt.Sprintf("%d", k.SubscriptionVisits)),
		figure("Loyalty rate", fmt.Sprintf("%.1f%%", k.LoyaltyRate)),
	}

	for i := range cells[:len(cells)-1] {
		cells[i] = lipgloss.NewStyle().PaddingRight(3).Render(cells[i])
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if k.Days == 0 {
		row += "\n" + f.styles.Warning.Render("Selection matches no days")
	}
	return f.styles.RenderBox(row, fmt.Sprintf("%d days", k.Days), f.styles.KPIBox)
}

func (f *CLIFormatter) formatSplit(split TypeSplit) string {
	title := f.styles.Subtitle.Render("Visit types:")

	sub, meal, news, ok := split.Shares()
	if !ok {
		return title + "\n" + f.styles.Subtle.Render("  "+noData)
	}

	line := func(label string, share float64, count int) string {
		bar := f.styles.ProgressFill.Render(f.styles.RenderProgressBar(share, 24))
		return fmt.Sprintf("  %-14s %s %5.1f%%  (%d)", label, bar, share*100, count)
	}
	return strings.Join([]string{
		title,
		line("Subscription", sub, split.SubscriptionVisits),
		line("Meals", meal, split.MealVisits),
		line("New entries", news, split.NewEntries),
	}, "\n")
}

func (f *CLIFormatter) formatInsights(ins Insights) string {
	bullet := f.styles.Info.Render("•")

	weekday := func(e WeekdayExtreme) string {
		if !e.OK {
			return f.styles.Subtle.Render(noData)
		}
		return fmt.Sprintf("%s (%.1f visits/day)", f.names.WeekdayLabel(e.Weekday), e.Mean)
	}
	month := noData
	if m := ins.BestAcquisitionMonth; m.OK {
		month = fmt.Sprintf("%s (%d new)", f.names.MonthLabel(m.Month), m.NewEntries)
	}

	lines := []string{
		fmt.Sprintf("%s Busiest weekday: %s", bullet, weekday(ins.BestWeekday)),
		fmt.Sprintf("%s Quietest weekday: %s", bullet, weekday(ins.WorstWeekday)),
		fmt.Sprintf("%s Best acquisition month: %s", bullet, month),
		fmt.Sprintf("%s Weekend / weekday ratio: %s", bullet,
			f.styles.ForRatio(ins.WeekendRatio).Render(fmt.Sprintf("%.2f", ins.WeekendRatio))),
		fmt.Sprintf("%s New client rate: %.1f%%", bullet, ins.NewClientRate),
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"), "💡 Insights", f.styles.InsightBox)
}

func (f *CLIFormatter) formatRecommendations(recs []Recommendation) string {
	title := f.styles.Subtitle.Render("🎯 Recommendations:")
	lines := []string{title}
	for i, r := range recs {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, f.styles.Info.Bold(true).Render(r.Title)),
			f.styles.Subtle.Render("   "+r.Detail))
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatWeekly(series []WeeklyPoint) string {
	title := f.styles.Subtitle.Render("Weekly visits:")
	if len(series) == 0 {
		return title + "\n" + f.styles.Subtle.Render("  "+noData)
	}

	values := make([]int, len(series))
	for i, p := range series {
		values[i] = p.TotalVisits
	}

	first, last := series[0], series[len(series)-1]
	return fmt.Sprintf("%s\n  %s\n  %s",
		title,
		f.styles.Figure.Render(sparkline(values)),
		f.styles.Subtle.Render(fmt.Sprintf("W%02d (%d) … W%02d (%d)", first.Week, first.TotalVisits, last.Week, last.TotalVisits)))
}

func (f *CLIFormatter) formatWeekdays(profile []WeekdayStat) string {
	title := f.styles.Subtitle.Render("By weekday:")
	if len(profile) == 0 {
		return title + "\n" + f.styles.Subtle.Render("  "+noData)
	}

	header := fmt.Sprintf("%-12s %6s %12s %10s", "Weekday", "Days", "Mean total", "Mean new")
	rows := []string{title, f.styles.Subtle.Bold(true).Render(header), f.styles.Subtle.Render(repeatChar("─", len(header)))}
	for _, s := range profile {
		rows = append(rows, fmt.Sprintf("%-12s %6d %12.1f %10.1f",
			f.names.WeekdayLabel(s.Weekday), s.Days, s.MeanTotal, s.MeanNew))
	}
	return strings.Join(rows, "\n")
}

func (f *CLIFormatter) formatMonthly(profile []MonthStat) string {
	title := f.styles.Subtitle.Render("By month:")
	if len(profile) == 0 {
		return title + "\n" + f.styles.Subtle.Render("  "+noData)
	}

	header := fmt.Sprintf("%-12s %6s %8s %8s %14s", "Month", "Days", "Total", "New", "Subscriptions")
	rows := []string{title, f.styles.Subtle.Bold(true).Render(header), f.styles.Subtle.Render(repeatChar("─", len(header)))}
	for _, s := range profile {
		rows = append(rows, fmt.Sprintf("%-12s %6d %8d %8d %14d",
			f.names.MonthLabel(s.Month), s.Days, s.TotalVisits, s.NewEntries, s.SubscriptionVisits))
	}
	return strings.Join(rows, "\n")
}

// formatHeatmap leaves cells without backing days blank so they read differently from zero.
func (f *CLIFormatter) formatHeatmap(h Heatmap) string {
	title := f.styles.Subtitle.Render("Mean visits, weekday × month:")
	if len(h.Weekdays) == 0 {
		return title + "\n" + f.styles.Subtle.Render("  "+noData)
	}

	var hottest float64
	for _, row := range h.Cells {
		for _, c := range row {
			if c.Valid && c.Mean > hottest {
				hottest = c.Mean
			}
		}
	}

	const colWidth = 9
	header := fmt.Sprintf("%-10s", "")
	for _, m := range h.Months {
		header += fmt.Sprintf("%*s", colWidth, truncate(f.names.MonthLabel(m), colWidth-1))
	}
	rows := []string{title, f.styles.Subtle.Bold(true).Render(header)}

	for i, d := range h.Weekdays {
		line := fmt.Sprintf("%-10s", truncate(f.names.WeekdayLabel(d), 9))
		for _, c := range h.Cells[i] {
			if !c.Valid {
				line += strings.Repeat(" ", colWidth)
				continue
			}
			line += f.styles.ForHeat(c.Mean, hottest).Render(fmt.Sprintf("%*.1f", colWidth, c.Mean))
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (f *CLIFormatter) formatDaily(records []model.Record) string {
	title := f.styles.Subtitle.Render("Daily detail:")
	if len(records) == 0 {
		return title + "\n" + f.styles.Subtle.Render("  "+noData)
	}

	header := fmt.Sprintf("%-10s %-10s %-10s %4s %6s %6s %6s %6s",
		"Date", "Weekday", "Month", "Week", "New", "Subs", "Meals", "Total")
	rows := []string{title, f.styles.Subtle.Bold(true).Render(header), f.styles.Subtle.Render(repeatChar("─", len(header)))}
	for _, r := range records {
		rows = append(rows, fmt.Sprintf("%-10s %-10s %-10s %4d %6d %6d %6d %6d",
			r.Date.Format("02/01/2006"),
			truncate(f.names.WeekdayLabel(r.Weekday), 10),
			truncate(f.names.MonthLabel(r.Month), 10),
			r.Week, r.NewEntries, r.SubscriptionVisits, r.MealVisits, r.TotalVisits))
	}
	return strings.Join(rows, "\n")
}

// sparkline scales values onto eight block heights.
func sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = (v - lo) * (len(sparkBlocks) - 1) / (hi - lo)
		}
		b.WriteRune(sparkBlocks[i])
	}
	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
