package model

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Names maps source-data names onto the canonical enums and back to display labels.
// Alias keys are matched case- and accent-insensitively.
type Names struct {
	weekdayAliases map[string]Weekday
	monthAliases   map[string]Month
	WeekdayLabels  [7]string
	MonthLabels    [12]string
}

var (
	frenchWeekdays = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}
	frenchMonths   = [12]string{
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	}
)

// DefaultNames recognizes English and French names and labels output in French,
// the language of the gym's export.
func DefaultNames() *Names {
	n := &Names{
		weekdayAliases: make(map[string]Weekday),
		monthAliases:   make(map[string]Month),
		WeekdayLabels:  frenchWeekdays,
		MonthLabels:    frenchMonths,
	}

	for i, d := range Weekdays {
		n.AddWeekdayAlias(d.String(), d)
		n.AddWeekdayAlias(d.String()[:3], d)
		n.AddWeekdayAlias(frenchWeekdays[i], d)
	}
	for i, m := range Months {
		n.AddMonthAlias(m.String(), m)
		n.AddMonthAlias(m.String()[:3], m)
		n.AddMonthAlias(frenchMonths[i], m)
	}

	return n
}

// AddWeekdayAlias registers name as a spelling of d.
func (n *Names) AddWeekdayAlias(name string, d Weekday) {
	if key := nameKey(name); key != "" && d.Valid() {
		n.weekdayAliases[key] = d
	}
}

// AddMonthAlias registers name as a spelling of m.
func (n *Names) AddMonthAlias(name string, m Month) {
	if key := nameKey(name); key != "" && m.Valid() {
		n.monthAliases[key] = m
	}
}

// SetWeekdayLabel overrides the display label of d and makes it a recognized alias.
func (n *Names) SetWeekdayLabel(d Weekday, label string) error {
	if !d.Valid() {
		return fmt.Errorf("cannot label weekday %d", d)
	}
	n.WeekdayLabels[d.Index()] = label
	n.AddWeekdayAlias(label, d)
	return nil
}

// SetMonthLabel overrides the display label of m and makes it a recognized alias.
func (n *Names) SetMonthLabel(m Month, label string) error {
	if !m.Valid() {
		return fmt.Errorf("cannot label month %d", m)
	}
	n.MonthLabels[m.Index()] = label
	n.AddMonthAlias(label, m)
	return nil
}

// ParseWeekday resolves a weekday name. Unrecognized names yield WeekdayUnknown.
func (n *Names) ParseWeekday(name string) Weekday {
	return n.weekdayAliases[nameKey(name)]
}

// ParseMonth resolves a month name. Unrecognized names yield MonthUnknown.
func (n *Names) ParseMonth(name string) Month {
	return n.monthAliases[nameKey(name)]
}

// WeekdayLabel returns the display label for d.
func (n *Names) WeekdayLabel(d Weekday) string {
	if !d.Valid() {
		return "?"
	}
	return n.WeekdayLabels[d.Index()]
}

// MonthLabel returns the display label for m.
func (n *Names) MonthLabel(m Month) string {
	if !m.Valid() {
		return "?"
	}
	return n.MonthLabels[m.Index()]
}

// nameKey folds case and strips diacritics so "Février", "fevrier" and "FEVRIER" collide.
func nameKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		folded = strings.TrimSpace(name)
	}
	return strings.ToLower(folded)
}
