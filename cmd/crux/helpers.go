package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/config"
	"github.com/Veraticus/crux/internal/dataset"
	"github.com/Veraticus/crux/internal/model"
	"github.com/Veraticus/crux/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the snapshot cache with proper path expansion and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("cache.path")
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir(), "cache.db")
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// session is everything a command needs once the source is loaded.
type session struct {
	table *model.Table
	names *model.Names
	store *storage.SQLiteStorage
	cache *dataset.Cache
	path  string
}

// reload returns the source table, parsing again only if the file changed
// or force is set.
func (s *session) reload(ctx context.Context, force bool) (*model.Table, error) {
	if force {
		s.cache.Invalidate(s.path)
	}
	return s.cache.Get(ctx, s.path)
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// loadSession resolves the configured source and loads it, through the snapshot
// cache unless cache.disabled is set. Progress goes to progress when enabled.
func loadSession(ctx context.Context, progress io.Writer) (*session, error) {
	src, err := config.LoadSource()
	if err != nil {
		return nil, err
	}
	if src.Path == "" {
		return nil, common.NewUserError(
			"No attendance source configured. Pass --source or set source.path in config.yaml",
			common.ErrMissingConfig)
	}

	names, err := config.LoadNames()
	if err != nil {
		return nil, err
	}

	opts := []dataset.Option{
		dataset.WithNames(names),
		dataset.WithDateLayouts(src.DateLayouts...),
		dataset.WithDelimiter(src.Delimiter),
	}
	if src.Progress && progress != nil {
		opts = append(opts, dataset.WithProgress(progress))
	}

	s := &session{names: names}
	if !viper.GetBool("cache.disabled") {
		store, err := initStorage(ctx)
		if err != nil {
			// The cache only saves parse time.
			common.LogError(err, "Snapshot cache unavailable, loading without it", nil)
		} else {
			s.store = store
			opts = append(opts, dataset.WithSnapshotStore(store))
		}
	}

	cache, err := dataset.NewCache(dataset.NewLoader(opts...), 1)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.cache, s.path = cache, src.Path

	table, err := s.reload(ctx, false)
	if err != nil {
		_ = s.Close()
		return nil, common.NewUserError(fmt.Sprintf("Could not load %s", src.Path), err)
	}
	s.table = table
	return s, nil
}

// parseSelection builds the report selection. An empty flag keeps that
// dimension's default: every month in the table, every weekday.
func parseSelection(table *model.Table, names *model.Names, months, weekdays []string) (analysis.Selection, error) {
	sel := analysis.DefaultSelection(table)

	if len(months) > 0 {
		m, err := analysis.ParseMonths(names, months)
		if err != nil {
			return analysis.Selection{}, common.NewUserError("Invalid --months", err)
		}
		sel.Months = m
	}

	if len(weekdays) > 0 {
		d, err := analysis.ParseWeekdays(names, weekdays)
		if err != nil {
			return analysis.Selection{}, common.NewUserError("Invalid --weekdays", err)
		}
		sel.Weekdays = d
	}

	return sel, nil
}

func stderrIfTerminal() io.Writer {
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return os.Stderr
	}
	return nil
}
