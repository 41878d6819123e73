package core

import (
	"time"

	"github.com/jinzhu/now"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ValidateDate checks that s is a calendar date in exact YYYY-MM-DD form.
// "2024-1-5" is rejected even though it names a real day.
func ValidateDate(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return ErrInvalidDate
	}
	return nil
}

// ValidateMonth checks that s is a month in exact YYYY-MM form.
func ValidateMonth(s string) error {
	_, err := parseMonth(s)
	return err
}

// MonthRange returns the first and last day of month as YYYY-MM-DD strings.
// Well-formed ISO dates sort lexically, so the pair bounds a string range.
func MonthRange(month string) (first, last string, err error) {
	t, err := parseMonth(month)
	if err != nil {
		return "", "", err
	}
	n := now.With(t)
	return n.BeginningOfMonth().Format(DateLayout), n.EndOfMonth().Format(DateLayout), nil
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, s, time.UTC)
	if err != nil || t.Format(MonthLayout) != s {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}
