package tui

import (
	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/model"
	"github.com/Veraticus/crux/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Names     *model.Names
	Selection *analysis.Selection
	Reload    ReloadFunc
	Width     int
	Height    int
	ShowHelp  bool
}

// ReloadFunc returns the current version of the source table. With force
// set the source is parsed again even if it looks unchanged.
type ReloadFunc func(force bool) (*model.Table, error)

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Names:  model.DefaultNames(),
		Width:  100,
		Height: 30,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithNames sets the labels used for weekdays and months.
func WithNames(names *model.Names) Option {
	return func(c *Config) {
		if names != nil {
			c.Names = names
		}
	}
}

// WithSelection sets the initial selection instead of the table default.
func WithSelection(sel analysis.Selection) Option {
	return func(c *Config) {
		c.Selection = &sel
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithReload enables the reload key. fn runs off the UI goroutine.
func WithReload(fn ReloadFunc) Option {
	return func(c *Config) {
		c.Reload = fn
	}
}
