package services

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. It is the unit every reconciliation
// computation is keyed on.
type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month format, use YYYY-MM: %q", s)
	}
	return Month{Year: t.Year(), Month: int(t.Month())}, nil
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && int(t.Month()) == m.Month
}

// First returns the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the month n months away (n may be negative).
func (m Month) AddMonths(n int) Month {
	t := m.First().AddDate(0, n, 0)
	return MonthOf(t)
}

// After reports whether m is strictly later than other.
func (m Month) After(other Month) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

func (m Month) Equal(other Month) bool {
	return m.Year == other.Year && m.Month == other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
