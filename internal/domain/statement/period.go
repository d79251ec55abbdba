// Package statement derives financial reports from a read-only ledger snapshot.
// Every function here is pure: same snapshot and period in, same report out,
// independent of the order rows were loaded in.
package statement

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Period is a date filter. Start is inclusive from its instant, End is inclusive through
// its instant. Either bound may be nil.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls within the period
func (p Period) Contains(t time.Time) bool {
	if p.Start != nil && t.Before(*p.Start) {
		return false
	}
	if p.End != nil && t.After(*p.End) {
		return false
	}
	return true
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// ParseDate accepts YYYY-MM-DD (interpreted in loc) or RFC 3339
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.In(loc), nil
}

// ParsePeriod builds a period from optional start and end date strings.
// The end bound always extends to the end of its calendar day in loc.
func ParsePeriod(start, end string, loc *time.Location) (Period, error) {
	var p Period
	if strings.TrimSpace(start) != "" {
		t, err := ParseDate(start, loc)
		if err != nil {
			return Period{}, err
		}
		t = StartOfDay(t)
		p.Start = &t
	}
	if strings.TrimSpace(end) != "" {
		t, err := ParseDate(end, loc)
		if err != nil {
			return Period{}, err
		}
		t = EndOfDay(t)
		p.End = &t
	}
	if p.Start != nil && p.End != nil && p.End.Before(*p.Start) {
		return Period{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return p, nil
}

// MonthPeriod covers one calendar month
func MonthPeriod(month, year int, loc *time.Location) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("invalid year %d", year)
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := EndOfDay(start.AddDate(0, 1, -1))
	return Period{Start: &start, End: &end}, nil
}

// FinancialYearPeriod covers April 1 of fy through March 31 of fy+1
func FinancialYearPeriod(fy int, loc *time.Location) (Period, error) {
	if fy < 1900 || fy > 9998 {
		return Period{}, fmt.Errorf("invalid financial year %d", fy)
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(fy, time.April, 1, 0, 0, 0, 0, loc)
	end := EndOfDay(time.Date(fy+1, time.March, 31, 0, 0, 0, 0, loc))
	return Period{Start: &start, End: &end}, nil
}

// Key renders the period for cache keys and export file names
func (p Period) Key() string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(dateLayout)
	}
	return format(p.Start) + "_" + format(p.End)
}
