package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/config"
	"github.com/Veraticus/crux/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the attendance dashboard",
		Long: `Build the dashboard for a selection of months and weekdays and print it.

Without --months every month present in the source is selected; without
--weekdays every weekday is. Names are matched case- and accent-insensitively
in French or English, and "all", "weekend" and "week" are accepted.`,
		Example: `  # Whole source, summary and detail panels
  crux report --source attendance.csv --details

  # Weekends of the first quarter as JSON
  crux report --months jan,feb,mar --weekdays weekend --format json

  # Heatmap as CSV
  crux report --format csv --view Heatmap

  # Every section as a workbook
  crux report --format xlsx --output attendance.xlsx`,
		RunE: runReport,
	}

	cmd.Flags().StringSliceP("months", "m", nil, "months to include (comma-separated or repeated)")
	cmd.Flags().StringSliceP("weekdays", "w", nil, "weekdays to include (comma-separated or repeated)")
	cmd.Flags().StringP("format", "f", "table", "output format (table, json, csv, xlsx)")
	cmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	cmd.Flags().String("view", "", "single section to print: "+strings.Join(analysis.ViewNames, ", "))
	cmd.Flags().Bool("details", false, "include weekly, weekday, monthly and heatmap panels")
	cmd.Flags().Bool("daily", false, "include the daily table (implies --details)")
	cmd.Flags().Int("width", 100, "panel width for table output")

	_ = viper.BindPFlag("report.months", cmd.Flags().Lookup("months"))
	_ = viper.BindPFlag("report.weekdays", cmd.Flags().Lookup("weekdays"))
	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("report.details", cmd.Flags().Lookup("details"))
	_ = viper.BindPFlag("report.width", cmd.Flags().Lookup("width"))

	return cmd
}

// reportOptions controls how a built report is printed.
type reportOptions struct {
	Format  string
	View    string
	Details bool
	Daily   bool
	Width   int
}

func runReport(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd.Context(), stderrIfTerminal())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sel, err := parseSelection(s.table, s.names,
		viper.GetStringSlice("report.months"),
		viper.GetStringSlice("report.weekdays"))
	if err != nil {
		return err
	}

	view, _ := cmd.Flags().GetString("view")
	daily, _ := cmd.Flags().GetBool("daily")
	output, _ := cmd.Flags().GetString("output")
	opts := reportOptions{
		Format:  viper.GetString("report.format"),
		View:    view,
		Details: viper.GetBool("report.details") || daily,
		Daily:   daily,
		Width:   viper.GetInt("report.width"),
	}

	if output == "" && strings.EqualFold(opts.Format, "xlsx") {
		return common.NewUserError("--format xlsx needs --output", common.ErrInvalidConfig)
	}

	report := analysis.Build(s.table, sel)
	if output == "" {
		return renderReport(cmd.OutOrStdout(), report, s.names, opts)
	}

	path := config.ExpandPath(output)
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := renderReport(f, report, s.names, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	common.LogInfo("Report written", common.Fields{"path": path, "format": opts.Format, "days": report.KPIs.Days})
	return nil
}

func renderReport(w io.Writer, report *analysis.Report, names *model.Names, opts reportOptions) error {
	view, err := resolveView(opts.View)
	if err != nil {
		return err
	}

	switch strings.ToLower(opts.Format) {
	case "table", "":
		f := analysis.NewCLIFormatter(names)
		if opts.Width > 0 {
			f = f.WithWidth(opts.Width)
		}
		var out string
		switch {
		case view != "":
			out = f.FormatSection(report, view)
		case opts.Details:
			out = f.Format(report, opts.Daily)
		default:
			out = f.FormatSummary(report)
		}
		_, err := fmt.Fprintln(w, out)
		return err

	case "json":
		return analysis.WriteJSON(w, report)

	case "csv":
		if view == "" {
			view = analysis.ViewSummary
		}
		tab, _ := analysis.View(report, names, view)
		return analysis.WriteCSV(w, tab)

	case "xlsx":
		return analysis.WriteXLSX(w, report, names)

	default:
		return fmt.Errorf("unknown output format %q (want table, json, csv or xlsx)", opts.Format)
	}
}

// resolveView matches a view name case-insensitively. Empty means no single view.
func resolveView(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	for _, v := range analysis.ViewNames {
		if strings.EqualFold(v, name) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q (want one of %s)", name, strings.Join(analysis.ViewNames, ", "))
}
