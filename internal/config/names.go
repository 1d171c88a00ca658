package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/dataset"
	"github.com/Veraticus/crux/internal/model"
	"github.com/spf13/viper"
)

// Source describes where attendance data comes from and how to read it.
type Source struct {
	Path        string
	DateLayouts []string
	Delimiter   rune
	Progress    bool
}

// LoadSource reads the source.* keys.
func LoadSource() (Source, error) {
	src := Source{
		Path:        ExpandPath(viper.GetString("source.path")),
		DateLayouts: dataset.DefaultDateLayouts,
		Delimiter:   ',',
		Progress:    viper.GetBool("source.progress"),
	}

	if layouts := viper.GetStringSlice("source.date_layouts"); len(layouts) > 0 {
		src.DateLayouts = layouts
	}

	if d := viper.GetString("source.delimiter"); d != "" {
		r, size := utf8.DecodeRuneInString(d)
		if size != len(d) || r == utf8.RuneError {
			return Source{}, fmt.Errorf("%w: source.delimiter must be a single character, got %q", common.ErrInvalidConfig, d)
		}
		src.Delimiter = r
	}

	return src, nil
}

// LoadNames builds the name tables from the defaults plus names.* aliases and labels.* overrides.
//
//	names:
//	  weekdays: {monday: [Montag, Mo]}
//	  months:   {march: [März]}
//	labels:
//	  weekdays: {saturday: Sat}
//
// Keys are canonical day or month names in any registered language.
func LoadNames() (*model.Names, error) {
	names := model.DefaultNames()
	// Keys resolve against the built-in aliases only, so user aliases cannot redefine each other.
	canon := model.DefaultNames()

	for key, aliases := range viper.GetStringMapStringSlice("names.weekdays") {
		d := canon.ParseWeekday(key)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: names.weekdays: unknown weekday %q", common.ErrInvalidConfig, key)
		}
		for _, a := range aliases {
			names.AddWeekdayAlias(a, d)
		}
	}

	for key, aliases := range viper.GetStringMapStringSlice("names.months") {
		m := canon.ParseMonth(key)
		if !m.Valid() {
			return nil, fmt.Errorf("%w: names.months: unknown month %q", common.ErrInvalidConfig, key)
		}
		for _, a := range aliases {
			names.AddMonthAlias(a, m)
		}
	}

	for key, label := range viper.GetStringMapString("labels.weekdays") {
		if err := names.SetWeekdayLabel(canon.ParseWeekday(key), label); err != nil {
			return nil, fmt.Errorf("%w: labels.weekdays.%s: %w", common.ErrInvalidConfig, key, err)
		}
	}

	for key, label := range viper.GetStringMapString("labels.months") {
		if err := names.SetMonthLabel(canon.ParseMonth(key), label); err != nil {
			return nil, fmt.Errorf("%w: labels.months.%s: %w", common.ErrInvalidConfig, key, err)
		}
	}

	return names, nil
}
