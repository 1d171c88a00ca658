// Package dataset loads the attendance export into an immutable model.Table.
package dataset

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	"github.com/Veraticus/crux/internal/service"
)

// Option configures a Loader.
type Option func(*Loader)

// WithNames sets the name tables used to resolve the weekday and month columns.
func WithNames(names *model.Names) Option {
	return func(l *Loader) {
		if names != nil {
			l.parser.names = names
		}
	}
}

// WithDateLayouts sets the layouts tried, in order, for the Date column.
func WithDateLayouts(layouts ...string) Option {
	return func(l *Loader) {
		if len(layouts) > 0 {
			l.parser.layouts = layouts
		}
	}
}

// WithDelimiter sets the CSV field delimiter.
func WithDelimiter(comma rune) Option {
	return func(l *Loader) {
		if comma != 0 {
			l.parser.comma = comma
		}
	}
}

// WithProgress renders a progress bar to w while rows are parsed.
func WithProgress(w io.Writer) Option {
	return func(l *Loader) {
		l.parser.progress = w
	}
}

// WithSnapshotStore enables the persisted load cache.
func WithSnapshotStore(store service.SnapshotStore) Option {
	return func(l *Loader) {
		l.store = store
	}
}

// Loader reads attendance sources from disk.
type Loader struct {
	parser *Parser
	store  service.SnapshotStore
}

// NewLoader creates a loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{parser: NewParser()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file at path and returns its table.
// When a snapshot store is configured, a snapshot with the same content hash
// short-circuits parsing; snapshot failures are logged and never fatal.
func (l *Loader) Load(ctx context.Context, path string) (*model.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read attendance source: %w", err)
	}

	hash := ContentHash(content)

	if l.store != nil {
		table, getErr := l.store.GetSnapshot(ctx, hash)
		switch {
		case getErr == nil:
			slog.Debug("Loaded attendance from snapshot", "path", path, "hash", hash[:12], "rows", table.Len())
			return table, nil
		case !errors.Is(getErr, common.ErrSnapshotNotFound):
			slog.Warn("Snapshot lookup failed, parsing source", "path", path, "error", getErr)
		}
	}

	table, err := l.parser.Parse(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Info("Loaded attendance", "path", path, "rows", table.Len())

	if l.store != nil {
		if saveErr := l.store.SaveSnapshot(ctx, hash, path, table); saveErr != nil {
			slog.Warn("Failed to save snapshot", "path", path, "error", saveErr)
		}
	}

	return table, nil
}

// ContentHash returns the hex SHA-256 of content, used as the snapshot key.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
