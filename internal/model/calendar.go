package model

import "time"

// Weekday is a day of the week in canonical Monday-first order.
// The zero value is WeekdayUnknown and never matches a canonical day.
type Weekday int

const (
	// WeekdayUnknown marks a weekday name outside the canonical set.
	WeekdayUnknown Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays lists the canonical weekday order used for grouping, display and tie-breaking.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{"Unknown", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Valid reports whether d is one of the seven canonical weekdays.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Index returns the position of d in the canonical order, or -1 when unknown.
func (d Weekday) Index() int {
	if !d.Valid() {
		return -1
	}
	return int(d - Monday)
}

// IsWeekend reports whether d is Saturday or Sunday.
func (d Weekday) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// String returns the English name of the weekday.
func (d Weekday) String() string {
	if !d.Valid() {
		return weekdayNames[0]
	}
	return weekdayNames[d]
}

// WeekdayOf converts a time.Weekday (Sunday-first) into the canonical enum.
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(d)
}

// Month is a calendar month in canonical January-first order.
// The zero value is MonthUnknown.
type Month int

const (
	// MonthUnknown marks a month name outside the canonical set.
	MonthUnknown Month = iota
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// Months lists the canonical month order.
var Months = [12]Month{January, February, March, April, May, June, July, August, September, October, November, December}

// Valid reports whether m is one of the twelve canonical months.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// Index returns the position of m in the canonical order, or -1 when unknown.
func (m Month) Index() int {
	if !m.Valid() {
		return -1
	}
	return int(m - January)
}

// String returns the English name of the month.
func (m Month) String() string {
	if !m.Valid() {
		return "Unknown"
	}
	return time.Month(m).String()
}

// MonthOf converts a time.Month into the canonical enum.
func MonthOf(m time.Month) Month {
	return Month(m)
}

// MarshalText encodes the weekday as its English name.
func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes an English weekday name; anything else is WeekdayUnknown.
func (d *Weekday) UnmarshalText(text []byte) error {
	*d = WeekdayUnknown
	for _, wd := range Weekdays {
		if wd.String() == string(text) {
			*d = wd
		}
	}
	return nil
}

// MarshalText encodes the month as its English name.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes an English month name; anything else is MonthUnknown.
func (m *Month) UnmarshalText(text []byte) error {
	*m = MonthUnknown
	for _, mo := range Months {
		if mo.String() == string(text) {
			*m = mo
		}
	}
	return nil
}
