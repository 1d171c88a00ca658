package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/crux/internal/model"
)

// Selection is the set of months and weekdays a report is restricted to.
// An empty dimension selects nothing.
type Selection struct {
	Months   []model.Month   `json:"months"`
	Weekdays []model.Weekday `json:"weekdays"`
}

// AllMonths returns the twelve canonical months.
func AllMonths() []model.Month {
	return slices.Clone(model.Months[:])
}

// AllWeekdays returns the seven canonical weekdays.
func AllWeekdays() []model.Weekday {
	return slices.Clone(model.Weekdays[:])
}

// DefaultSelection selects every month present in table and every weekday.
func DefaultSelection(table *model.Table) Selection {
	return Selection{
		Months:   table.Months(),
		Weekdays: AllWeekdays(),
	}
}

// HasMonth reports whether m is selected.
func (s Selection) HasMonth(m model.Month) bool {
	return slices.Contains(s.Months, m)
}

// HasWeekday reports whether d is selected.
func (s Selection) HasWeekday(d model.Weekday) bool {
	return slices.Contains(s.Weekdays, d)
}

// ToggleMonth returns a copy of s with m added or removed, kept in canonical order.
func (s Selection) ToggleMonth(m model.Month) Selection {
	out := s.clone()
	if i := slices.Index(out.Months, m); i >= 0 {
		out.Months = slices.Delete(out.Months, i, i+1)
	} else if m.Valid() {
		out.Months = append(out.Months, m)
		slices.Sort(out.Months)
	}
	return out
}

// ToggleWeekday returns a copy of s with d added or removed, kept in canonical order.
func (s Selection) ToggleWeekday(d model.Weekday) Selection {
	out := s.clone()
	if i := slices.Index(out.Weekdays, d); i >= 0 {
		out.Weekdays = slices.Delete(out.Weekdays, i, i+1)
	} else if d.Valid() {
		out.Weekdays = append(out.Weekdays, d)
		slices.Sort(out.Weekdays)
	}
	return out
}

func (s Selection) clone() Selection {
	return Selection{
		Months:   slices.Clone(s.Months),
		Weekdays: slices.Clone(s.Weekdays),
	}
}

// ParseMonths resolves month names through names. "all" selects every month.
func ParseMonths(names *model.Names, values []string) ([]model.Month, error) {
	var months []model.Month
	for _, v := range splitValues(values) {
		if strings.EqualFold(v, "all") {
			return AllMonths(), nil
		}
		m := names.ParseMonth(v)
		if !m.Valid() {
			return nil, fmt.Errorf("unknown month %q", v)
		}
		if !slices.Contains(months, m) {
			months = append(months, m)
		}
	}
	slices.Sort(months)
	return months, nil
}

// ParseWeekdays resolves weekday names through names. "all" selects every weekday,
// "weekend" and "week" select Saturday–Sunday and Monday–Friday.
func ParseWeekdays(names *model.Names, values []string) ([]model.Weekday, error) {
	var days []model.Weekday
	add := func(ds ...model.Weekday) {
		for _, d := range ds {
			if !slices.Contains(days, d) {
				days = append(days, d)
			}
		}
	}

	for _, v := range splitValues(values) {
		switch strings.ToLower(v) {
		case "all":
			return AllWeekdays(), nil
		case "weekend":
			add(model.Saturday, model.Sunday)
			continue
		case "week", "weekdays":
			add(model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday)
			continue
		}
		d := names.ParseWeekday(v)
		if !d.Valid() {
			return nil, fmt.Errorf("unknown weekday %q", v)
		}
		add(d)
	}
	slices.Sort(days)
	return days, nil
}

// splitValues accepts both repeated flags and comma-separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
