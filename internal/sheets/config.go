// Package sheets exports attendance reports to Google Sheets.
package sheets

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	// Tabs limits the export to these views. Empty exports every view.
	Tabs             []string
	BatchSize        int
	RetryAttempts    int
	RetryDelay       time.Duration
	EnableFormatting bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  "Attendance Report",
		EnableFormatting: true,
		TimeZone:         "Europe/Paris",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// Validate checks credentials, the spreadsheet target and the tab selection.
func (c *Config) Validate() error {
	if err := c.validateAuth(); err != nil {
		return err
	}

	var errs []error
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: batch size must be positive", common.ErrInvalidConfig))
	}
	if c.RetryAttempts < 0 {
		errs = append(errs, fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig))
	}
	for _, name := range c.Tabs {
		if !isView(name) {
			errs = append(errs, fmt.Errorf("%w: unknown tab %q (want one of %s)",
				common.ErrInvalidConfig, name, strings.Join(analysis.ViewNames, ", ")))
		}
	}
	if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
		errs = append(errs, fmt.Errorf("%w: spreadsheet id or name is required", common.ErrMissingConfig))
	}

	return errors.Join(errs...)
}

func (c *Config) validateAuth() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	switch {
	case !hasOAuth && !hasServiceAccount:
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	case hasOAuth && hasServiceAccount:
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}
	return nil
}

// wants reports whether the view named title is part of the export.
func (c *Config) wants(title string) bool {
	if len(c.Tabs) == 0 {
		return true
	}
	for _, t := range c.Tabs {
		if strings.EqualFold(t, title) {
			return true
		}
	}
	return false
}

func isView(name string) bool {
	for _, v := range analysis.ViewNames {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
