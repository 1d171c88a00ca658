package main

import (
	"fmt"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	"github.com/Veraticus/crux/internal/tui"
	"github.com/Veraticus/crux/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore attendance interactively",
		Long: `Open the full-screen explorer. Toggle months and weekdays and every
panel is recomputed from the selection. Press r to pick up a new export
written to the same path.`,
		RunE: runExplore,
	}

	cmd.Flags().StringSliceP("months", "m", nil, "initially selected months")
	cmd.Flags().StringSliceP("weekdays", "w", nil, "initially selected weekdays")
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("print", false, "print the summary of the final selection on exit")

	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runExplore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := loadSession(ctx, stderrIfTerminal())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	months, _ := cmd.Flags().GetStringSlice("months")
	weekdays, _ := cmd.Flags().GetStringSlice("weekdays")
	sel, err := parseSelection(s.table, s.names, months, weekdays)
	if err != nil {
		return err
	}

	final, err := tui.Run(ctx, s.table,
		tui.WithNames(s.names),
		tui.WithSelection(sel),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithReload(func(force bool) (*model.Table, error) { return s.reload(ctx, force) }),
	)
	if err != nil {
		return common.NewUserError("Explorer exited with an error", err)
	}

	common.LogDebug("Explorer closed", common.Fields{
		"months":   len(final.Selection().Months),
		"weekdays": len(final.Selection().Weekdays),
	})

	if printSummary, _ := cmd.Flags().GetBool("print"); printSummary {
		report := final.Report()
		if report == nil {
			report = analysis.Build(s.table, final.Selection())
		}
		fmt.Fprintln(cmd.OutOrStdout(), analysis.NewCLIFormatter(s.names).FormatSummary(report))
	}
	return nil
}
