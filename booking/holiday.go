package booking

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// HolidaySet is an immutable set of calendar dates on which bookings are
// rejected. Membership is an exact match on the booking date.
type HolidaySet struct {
	dates map[string]struct{}
}

// NewHolidaySet builds a set from wire-format date strings. Dates that do not
// parse as 2006-01-02 are rejected so a typo in the holiday list fails loudly
// at startup instead of silently never matching.
func NewHolidaySet(dates []string) (*HolidaySet, error) {
	set := &HolidaySet{dates: make(map[string]struct{}, len(dates))}
	for _, raw := range dates {
		parsed, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", raw, err)
		}
		set.dates[parsed.Format(DateLayout)] = struct{}{}
	}
	return set, nil
}

// Contains reports whether date falls on a configured holiday.
func (h *HolidaySet) Contains(date time.Time) bool {
	if h == nil || date.IsZero() {
		return false
	}
	_, ok := h.dates[date.Format(DateLayout)]
	return ok
}

// Len returns the number of configured holidays.
func (h *HolidaySet) Len() int {
	if h == nil {
		return 0
	}
	return len(h.dates)
}

// ReadHolidayDates reads a JSON array of date strings, the shape the service's
// public-holiday file ships in. Dates are returned unvalidated; pass them to
// [NewHolidaySet] to parse.
func ReadHolidayDates(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday file: %w", err)
	}
	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("parse holiday file: %w", err)
	}
	return dates, nil
}

// LoadHolidayFile builds a set straight from a holiday file.
func LoadHolidayFile(path string) (*HolidaySet, error) {
	dates, err := ReadHolidayDates(path)
	if err != nil {
		return nil, err
	}
	return NewHolidaySet(dates)
}
