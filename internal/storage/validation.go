package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/crux/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid record")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTable rejects tables that would break the schema constraints once stored.
func validateTable(table *model.Table) error {
	if table == nil {
		return fmt.Errorf("%w: table", ErrNilParameter)
	}

	var err error
	table.Each(func(r model.Record) {
		if err != nil {
			return
		}
		switch {
		case r.Date.IsZero():
			err = fmt.Errorf("%w: missing date", ErrInvalidRecord)
		case r.NewEntries < 0 || r.SubscriptionVisits < 0 || r.MealVisits < 0 || r.TotalVisits < 0:
			err = fmt.Errorf("%w: negative count on %s", ErrInvalidRecord, r.Date.Format("2006-01-02"))
		case !r.Month.Valid():
			err = fmt.Errorf("%w: unknown month on %s", ErrInvalidRecord, r.Date.Format("2006-01-02"))
		}
	})
	return err
}
