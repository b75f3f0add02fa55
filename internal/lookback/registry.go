// Package lookback holds the selectable lookback windows and turns a relative
// window size into absolute start/end instants.
package lookback

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLookbackWindow = errors.New("unrecognized lookback window")
	ErrUnknownInterval       = errors.New("unrecognized date interval")
	ErrInvalidWindowSize     = errors.New("invalid window size")
)

// DateInterval uses the same vocabulary as the profile query API.
type DateInterval string

const (
	Hour  DateInterval = "HOUR"
	Day   DateInterval = "DAY"
	Week  DateInterval = "WEEK"
	Month DateInterval = "MONTH"
	Year  DateInterval = "YEAR"
)

// WindowSize is a relative lookback duration: Count units of Interval.
type WindowSize struct {
	Interval DateInterval `json:"interval"`
	Count    int          `json:"count"`
}

func (w WindowSize) Validate() error {
	if w.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidWindowSize, w.Count)
	}
	switch w.Interval {
	case Hour, Day, Week, Month, Year:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownInterval, w.Interval)
}

type LookbackWindowOption struct {
	Label string     `json:"label"`
	Size  WindowSize `json:"size"`
}

const DefaultLookbackWindow = "3 months"

// LookbackWindows is rendered in this order by clients. Labels must stay unique.
var LookbackWindows = []LookbackWindowOption{
	{Label: "1 day", Size: WindowSize{Interval: Day, Count: 1}},
	{Label: "1 week", Size: WindowSize{Interval: Week, Count: 1}},
	{Label: "1 month", Size: WindowSize{Interval: Month, Count: 1}},
	{Label: "3 months", Size: WindowSize{Interval: Month, Count: 3}},
	{Label: "1 year", Size: WindowSize{Interval: Year, Count: 1}},
}

// ResolveBySelectionLabel returns the window size registered under label.
// Matching is exact and case-sensitive.
func ResolveBySelectionLabel(label string) (WindowSize, error) {
	for _, option := range LookbackWindows {
		if option.Label == label {
			return option.Size, nil
		}
	}
	return WindowSize{}, fmt.Errorf("%w: %q", ErrUnknownLookbackWindow, label)
}

func Labels() []string {
	labels := make([]string, 0, len(LookbackWindows))
	for _, option := range LookbackWindows {
		labels = append(labels, option.Label)
	}
	return labels
}
