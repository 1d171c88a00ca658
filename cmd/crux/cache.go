package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/crux/internal/cli"
	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/service"
	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the snapshot cache",
		Long: `Parsed attendance sources are kept in a local SQLite cache keyed by the
content hash of the file, so an unchanged export is not parsed twice.`,
		Example: `  # Show cached snapshots
  crux cache list

  # Drop one snapshot by hash prefix
  crux cache clear 3fa91c

  # Drop everything
  crux cache clear`,
	}

	cmd.AddCommand(cacheListCmd())
	cmd.AddCommand(cacheClearCmd())

	return cmd
}

func cacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return listSnapshots(ctx, cmd.OutOrStdout(), store, time.Now())
		},
	}
}

func listSnapshots(ctx context.Context, out io.Writer, store service.SnapshotStore, now time.Time) error {
	snapshots, err := store.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(out, cli.SubtitleStyle.Render("No cached snapshots."))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		cli.TableHeaderStyle.Render("HASH"),
		cli.TableHeaderStyle.Render("SOURCE"),
		cli.TableHeaderStyle.Render("ROWS"),
		cli.TableHeaderStyle.Render("LOADED"),
	}, "\t"))

	for _, s := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			cli.InfoStyle.Render(shortHash(s.Hash)),
			s.SourcePath,
			s.RowCount,
			formatRelativeTime(s.LoadedAt, now),
		)
	}

	return w.Flush()
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [hash-prefix...]",
		Short: "Delete cached snapshots",
		Long:  `Delete the snapshots matching each hash prefix, or every snapshot when none is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := clearSnapshots(ctx, store, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Removed "+cli.Count(n, "snapshot", "snapshots")))
			return nil
		},
	}
}

// clearSnapshots purges the store when prefixes is empty. Otherwise each prefix
// must match exactly one snapshot.
func clearSnapshots(ctx context.Context, store service.SnapshotStore, prefixes []string) (int, error) {
	if len(prefixes) == 0 {
		return store.Purge(ctx)
	}

	snapshots, err := store.ListSnapshots(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list snapshots: %w", err)
	}

	removed := 0
	for _, prefix := range prefixes {
		var matches []string
		for _, s := range snapshots {
			if strings.HasPrefix(s.Hash, prefix) {
				matches = append(matches, s.Hash)
			}
		}

		switch len(matches) {
		case 0:
			return removed, common.NewUserError(fmt.Sprintf("No snapshot matches %q", prefix), common.ErrSnapshotNotFound)
		case 1:
		default:
			return removed, common.NewUserError(fmt.Sprintf("%q matches %d snapshots, use a longer prefix", prefix, len(matches)), nil)
		}

		if err := store.DeleteSnapshot(ctx, matches[0]); err != nil {
			return removed, fmt.Errorf("failed to delete snapshot %s: %w", shortHash(matches[0]), err)
		}
		removed++
	}
	return removed, nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func formatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		if m := int(duration.Minutes()); m != 1 {
			return fmt.Sprintf("%d minutes ago", m)
		}
		return "1 minute ago"
	case duration < 24*time.Hour:
		if h := int(duration.Hours()); h != 1 {
			return fmt.Sprintf("%d hours ago", h)
		}
		return "1 hour ago"
	case duration < 7*24*time.Hour:
		if d := int(duration.Hours() / 24); d != 1 {
			return fmt.Sprintf("%d days ago", d)
		}
		return "yesterday"
	default:
		return t.Format("2006-01-02 15:04")
	}
}
