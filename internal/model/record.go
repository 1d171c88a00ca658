// Package model defines the attendance records and calendar enums shared by every layer.
package model

import (
	"slices"
	"time"
)

// Record holds one day of attendance figures.
// TotalVisits is recorded independently and is not the sum of the other counts.
type Record struct {
	Date               time.Time `json:"date"`
	Weekday            Weekday   `json:"weekday"`
	Month              Month     `json:"month"`
	Week               int       `json:"week"`
	NewEntries         int       `json:"new_entries"`
	SubscriptionVisits int       `json:"subscription_visits"`
	MealVisits         int       `json:"meal_visits"`
	TotalVisits        int       `json:"total_visits"`
}

// IsoWeek returns the ISO 8601 week number of date.
func IsoWeek(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// Table is an immutable, ordered collection of records.
type Table struct {
	records []Record
}

// NewTable builds a table that owns a copy of records, in the given order.
func NewTable(records []Record) *Table {
	return &Table{records: slices.Clone(records)}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of the records in table order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return slices.Clone(t.records)
}

// At returns the record at position i.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Each calls fn for every record in table order without copying the slice.
func (t *Table) Each(fn func(Record)) {
	if t == nil {
		return
	}
	for _, r := range t.records {
		fn(r)
	}
}

// Months returns the distinct canonical months present in the table, in canonical order.
func (t *Table) Months() []Month {
	var seen [13]bool
	t.Each(func(r Record) {
		if r.Month.Valid() {
			seen[r.Month] = true
		}
	})

	var months []Month
	for _, m := range Months {
		if seen[m] {
			months = append(months, m)
		}
	}
	return months
}

// DateRange returns the earliest and latest dates in the table.
// ok is false when the table is empty.
func (t *Table) DateRange() (start, end time.Time, ok bool) {
	t.Each(func(r Record) {
		if !ok || r.Date.Before(start) {
			start = r.Date
		}
		if !ok || r.Date.After(end) {
			end = r.Date
		}
		ok = true
	})
	return start, end, ok
}
