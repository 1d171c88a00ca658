package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	"github.com/Veraticus/crux/internal/service"
)

const dateLayout = "2006-01-02"

// GetSnapshot returns the table stored under hash, or common.ErrSnapshotNotFound.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, hash string) (*model.Table, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return nil, err
	}

	var rowCount int
	err := s.db.QueryRowContext(ctx, `SELECT row_count FROM snapshots WHERE hash = ?`, hash).Scan(&rowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, weekday, month, week, new_entries, subscription_visits, meal_visits, total_visits
		FROM snapshot_records
		WHERE hash = ?
		ORDER BY position`, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]model.Record, 0, rowCount)
	for rows.Next() {
		var (
			r    model.Record
			date string
		)
		if err := rows.Scan(&date, &r.Weekday, &r.Month, &r.Week,
			&r.NewEntries, &r.SubscriptionVisits, &r.MealVisits, &r.TotalVisits); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot record: %w", err)
		}
		if r.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("corrupt snapshot date %q: %w", date, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot records: %w", err)
	}

	if len(records) != rowCount {
		return nil, fmt.Errorf("snapshot %s is incomplete: expected %d rows, found %d", hash, rowCount, len(records))
	}

	return model.NewTable(records), nil
}

// SaveSnapshot stores table under hash, replacing any previous snapshot with that hash.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, hash, sourcePath string, table *model.Table) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(hash, "hash"); err != nil {
		return err
	}
	if err := validateTable(table); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE hash = ?`, hash); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (hash, source_path, row_count, loaded_at) VALUES (?, ?, ?, ?)`,
		hash, sourcePath, table.Len(), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_records
			(hash, position, date, weekday, month, week, new_entries, subscription_visits, meal_visits, total_visits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range table.Records() {
		if _, err := stmt.ExecContext(ctx, hash, i, r.Date.Format(dateLayout), int(r.Weekday), int(r.Month), r.Week,
			r.NewEntries, r.SubscriptionVisits, r.MealVisits, r.TotalVisits); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns every stored snapshot, newest first.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context) ([]service.SnapshotInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, source_path, row_count, loaded_at
		FROM snapshots
		ORDER BY loaded_at DESC, hash`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []service.SnapshotInfo
	for rows.Next() {
		var info service.SnapshotInfo
		if err := rows.Scan(&info.Hash, &info.SourcePath, &info.RowCount, &info.LoadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSnapshot removes the snapshot stored under hash.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, hash string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(hash, "hash"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE hash = ?`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return common.ErrSnapshotNotFound
	}
	return nil
}

// Purge deletes every snapshot and returns how many were removed.
func (s *SQLiteStorage) Purge(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge snapshots: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check purged rows: %w", err)
	}
	return int(affected), nil
}

var _ service.SnapshotStore = (*SQLiteStorage)(nil)
