package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	"github.com/schollz/progressbar/v3"
)

const utf8BOM = "\ufeff"

var (
	errNegative   = errors.New("count must not be negative")
	errFractional = errors.New("count must be a whole number")
	errOverflow   = errors.New("count is too large")
	errNoLayout   = errors.New("no date layout matched")
)

// Parser converts an attendance CSV into a table.
type Parser struct {
	names    *model.Names
	progress io.Writer
	layouts  []string
	comma    rune
}

// NewParser creates a parser with the default names, date layouts and comma delimiter.
func NewParser() *Parser {
	return &Parser{
		names:   model.DefaultNames(),
		layouts: DefaultDateLayouts,
		comma:   ',',
	}
}

// Parse reads every row of r. Any malformed cell, missing column or duplicate
// date aborts the whole parse.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.comma
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrEmptySource
	}

	index, err := p.columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	bar := p.newProgressBar(len(rows) - 1)
	records := make([]model.Record, 0, len(rows)-1)
	seen := make(map[time.Time]int, len(rows)-1)

	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Row numbers are 1-based and count the header, matching what a spreadsheet shows.
		rowNum := i + 2
		rec, err := p.parseRow(row, index, rowNum)
		if err != nil {
			return nil, err
		}

		if first, dup := seen[rec.Date]; dup {
			return nil, fmt.Errorf("%w: %s on rows %d and %d", ErrDuplicateDate, rec.Date.Format("2006-01-02"), first, rowNum)
		}
		seen[rec.Date] = rowNum
		records = append(records, rec)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	return model.NewTable(records), nil
}

func (p *Parser) columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return index, nil
}

func (p *Parser) parseRow(row []string, index map[string]int, rowNum int) (model.Record, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := p.parseDate(cell(ColumnDate))
	if err != nil {
		return model.Record{}, &ParseError{Row: rowNum, Column: ColumnDate, Value: cell(ColumnDate), Err: err}
	}

	rec := model.Record{
		Date:    date,
		Week:    model.IsoWeek(date),
		Weekday: p.names.ParseWeekday(cell(ColumnWeekday)),
		Month:   p.names.ParseMonth(cell(ColumnMonth)),
	}

	if !rec.Weekday.Valid() {
		slog.Warn("Unknown weekday name, row will not match any weekday filter",
			"row", rowNum, "value", cell(ColumnWeekday))
	} else if derived := model.WeekdayOf(date.Weekday()); derived != rec.Weekday {
		slog.Warn("Weekday name disagrees with date",
			"row", rowNum, "date", date.Format("2006-01-02"), "recorded", rec.Weekday, "derived", derived)
	}

	if !rec.Month.Valid() {
		rec.Month = model.MonthOf(date.Month())
		slog.Debug("Unknown month name, using month of date",
			"row", rowNum, "value", cell(ColumnMonth), "month", rec.Month)
	}

	counts := []struct {
		dst *int
		col string
	}{
		{&rec.NewEntries, ColumnNewEntries},
		{&rec.SubscriptionVisits, ColumnSubscription},
		{&rec.MealVisits, ColumnMeals},
		{&rec.TotalVisits, ColumnTotal},
	}
	for _, c := range counts {
		n, err := parseCount(cell(c.col))
		if err != nil {
			return model.Record{}, &ParseError{Row: rowNum, Column: c.col, Value: cell(c.col), Err: err}
		}
		*c.dst = n
	}

	return rec, nil
}

func (p *Parser) parseDate(value string) (time.Time, error) {
	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errNoLayout
}

// parseCount accepts integers and integral floats such as "12.0".
func parseCount(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return 0, err
		}
		switch {
		case math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f):
			return 0, errFractional
		case f < 0:
			return 0, errNegative
		case f >= float64(math.MaxInt):
			// float64(MaxInt) rounds up to 2^63; int(f) is undefined from there.
			return 0, errOverflow
		}
		n = int(f)
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}

func (p *Parser) newProgressBar(total int) *progressbar.ProgressBar {
	if p.progress == nil || total <= 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Loading attendance...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
