package lookback

import (
	"fmt"
	"time"
)

// ResolvedWindow is an absolute time range computed from a WindowSize at a
// given instant. It is recomputed on demand and never stored.
type ResolvedWindow struct {
	StartTime time.Time
	EndTime   time.Time
}

func (r ResolvedWindow) StartMillis() int64 {
	return r.StartTime.UnixMilli()
}

func (r ResolvedWindow) EndMillis() int64 {
	return r.EndTime.UnixMilli()
}

// Resolve anchors size at now: the window ends at now and starts Count units
// earlier. Day and coarser units use calendar arithmetic with time.AddDate
// normalization; Hour is a fixed duration.
func Resolve(size WindowSize, now time.Time) (ResolvedWindow, error) {
	if err := size.Validate(); err != nil {
		return ResolvedWindow{}, err
	}

	var start time.Time
	switch size.Interval {
	case Hour:
		start = now.Add(-time.Duration(size.Count) * time.Hour)
	case Day:
		start = now.AddDate(0, 0, -size.Count)
	case Week:
		start = now.AddDate(0, 0, -7*size.Count)
	case Month:
		start = now.AddDate(0, -size.Count, 0)
	case Year:
		start = now.AddDate(-size.Count, 0, 0)
	}

	return ResolvedWindow{StartTime: start, EndTime: now}, nil
}

// TickInterval returns the chart axis granularity for a window of the given
// unit, one step finer than the unit itself.
func TickInterval(interval DateInterval) (DateInterval, error) {
	switch interval {
	case Day:
		return Hour, nil
	case Week:
		return Day, nil
	case Month:
		return Week, nil
	case Year:
		return Month, nil
	default:
		return "", fmt.Errorf("%w: %q has no tick interval", ErrUnknownInterval, interval)
	}
}
