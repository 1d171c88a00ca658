// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/crux/internal/model"
)

// SnapshotInfo describes a persisted copy of a parsed attendance table.
type SnapshotInfo struct {
	LoadedAt   time.Time
	Hash       string
	SourcePath string
	RowCount   int
}

// SnapshotStore defines the contract for the persisted load cache.
type SnapshotStore interface {
	GetSnapshot(ctx context.Context, hash string) (*model.Table, error)
	SaveSnapshot(ctx context.Context, hash, sourcePath string, table *model.Table) error
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, hash string) error
	Purge(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for remote calls.
type RetryOptions struct {
	// Label names the operation in retry logs and the final error.
	Label        string
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// RateLimitDelay replaces the backoff after a quota rejection.
	// Zero means MaxDelay.
	RateLimitDelay time.Duration
}
