package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	"github.com/Veraticus/crux/internal/service"
	"google.golang.org/api/sheets/v4"
)

// Result describes a completed export.
type Result struct {
	SpreadsheetID string
	URL           string
	Tabs          int
	Rows          int
}

// Writer exports reports to a Google spreadsheet.
type Writer struct {
	api    spreadsheetAPI
	logger *slog.Logger
	names  *model.Names
	config Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, names *model.Names, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(&googleAPI{service: srv}, config, names, logger), nil
}

func newWriter(api spreadsheetAPI, config Config, names *model.Names, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if names == nil {
		names = model.DefaultNames()
	}
	return &Writer{api: api, config: config, names: names, logger: logger}
}

func (w *Writer) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		Label:        "sheets export",
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

func (w *Writer) retry(ctx context.Context, op func() error) error {
	return common.WithRetry(ctx, op, w.retryOptions())
}

// Write replaces the content of every report tab in the target spreadsheet,
// creating the spreadsheet or missing tabs as needed.
func (w *Writer) Write(ctx context.Context, report *analysis.Report) (*Result, error) {
	var tabs []Tab
	for _, t := range BuildTabs(report, w.names) {
		if w.config.wants(t.Title) {
			tabs = append(tabs, t)
		}
	}
	titles := make([]string, 0, len(tabs))
	for _, t := range tabs {
		titles = append(titles, t.Title)
	}

	w.logger.Info("starting sheets export", "tabs", len(tabs), "days", report.KPIs.Days)

	result, err := w.ensureSpreadsheet(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get spreadsheet: %w", common.ErrExportFailed, err)
	}

	sheetIDs, err := w.ensureTabs(ctx, result.SpreadsheetID, titles)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to prepare tabs: %w", common.ErrExportFailed, err)
	}

	for _, tab := range tabs {
		if err := w.retry(ctx, func() error {
			return w.api.Clear(ctx, result.SpreadsheetID, quoteRange(tab.Title, "A:Z"))
		}); err != nil {
			return nil, fmt.Errorf("%w: failed to clear %s: %w", common.ErrExportFailed, tab.Title, err)
		}

		if err := w.writeTab(ctx, result.SpreadsheetID, tab); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrExportFailed, err)
		}
		result.Rows += len(tab.Values)
	}
	result.Tabs = len(tabs)

	if w.config.EnableFormatting {
		requests := formattingRequests(tabs, sheetIDs)
		if err := w.retry(ctx, func() error {
			return w.api.BatchUpdate(ctx, result.SpreadsheetID, requests)
		}); err != nil {
			// Data is already written; formatting is cosmetic.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", result.SpreadsheetID,
		"rows_written", result.Rows)

	return result, nil
}

func (w *Writer) ensureSpreadsheet(ctx context.Context, titles []string) (*Result, error) {
	if id := w.config.SpreadsheetID; id != "" {
		err := w.retry(ctx, func() error {
			_, err := w.api.SheetIDs(ctx, id)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("unable to access spreadsheet %s: %w", id, err)
		}
		return &Result{SpreadsheetID: id, URL: spreadsheetURL(id)}, nil
	}

	var id, url string
	err := w.retry(ctx, func() error {
		var err error
		id, url, err = w.api.Create(ctx, w.config.SpreadsheetName, w.config.TimeZone, titles)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet", "id", id, "url", url)
	return &Result{SpreadsheetID: id, URL: url}, nil
}

// ensureTabs adds any missing tab and returns the sheet id of every title.
func (w *Writer) ensureTabs(ctx context.Context, spreadsheetID string, titles []string) (map[string]int64, error) {
	var ids map[string]int64
	load := func() error {
		var err error
		ids, err = w.api.SheetIDs(ctx, spreadsheetID)
		return err
	}
	if err := w.retry(ctx, load); err != nil {
		return nil, err
	}

	var missing []string
	for _, t := range titles {
		if _, ok := ids[t]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return ids, nil
	}

	w.logger.Debug("adding missing tabs", "tabs", missing)
	if err := w.retry(ctx, func() error {
		return w.api.AddTabs(ctx, spreadsheetID, missing)
	}); err != nil {
		return nil, err
	}
	if err := w.retry(ctx, load); err != nil {
		return nil, err
	}
	return ids, nil
}

// writeTab writes in batches to stay under API payload limits.
func (w *Writer) writeTab(ctx context.Context, spreadsheetID string, tab Tab) error {
	for i := 0; i < len(tab.Values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(tab.Values))
		batch := tab.Values[i:end]
		rng := quoteRange(tab.Title, fmt.Sprintf("A%d", i+1))

		if err := w.retry(ctx, func() error {
			return w.api.Update(ctx, spreadsheetID, rng, batch)
		}); err != nil {
			return fmt.Errorf("failed to write %s batch starting at row %d: %w", tab.Title, i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", len(batch))
	}
	return nil
}

// formattingRequests bolds and freezes each header row and auto-sizes columns.
func formattingRequests(tabs []Tab, sheetIDs map[string]int64) []*sheets.Request {
	var requests []*sheets.Request
	for _, tab := range tabs {
		id, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}

		headerRow := int64(0)
		if tab.Title == analysis.ViewSummary {
			// Title row and spacer precede the header.
			headerRow = 2
		}

		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       id,
						StartRowIndex: headerRow,
						EndRowIndex:   headerRow + 1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        id,
						GridProperties: &sheets.GridProperties{FrozenRowCount: headerRow + 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:   id,
						Dimension: "COLUMNS",
					},
				},
			},
		)
	}
	return requests
}

func quoteRange(tab, cells string) string {
	return fmt.Sprintf("'%s'!%s", tab, cells)
}

func spreadsheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id
}
