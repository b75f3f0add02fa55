package models

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"
)

var ErrInvalidQuery = errors.New("invalid profile query")

// ProfileQuery selects the profiles of one dataset with a timestamp inside
// [StartTimeMillis, EndTimeMillis].
type ProfileQuery struct {
	Urn             string `json:"urn" validate:"required"`
	StartTimeMillis int64  `json:"startTimeMillis"`
	EndTimeMillis   int64  `json:"endTimeMillis"`
}

func (q ProfileQuery) Validate() error {
	v := validate.Struct(&q)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, v.Errors.One())
	}
	if q.StartTimeMillis >= q.EndTimeMillis {
		return fmt.Errorf("%w: start %d must be before end %d", ErrInvalidQuery, q.StartTimeMillis, q.EndTimeMillis)
	}
	return nil
}

func (q ProfileQuery) Contains(timestampMillis int64) bool {
	return timestampMillis >= q.StartTimeMillis && timestampMillis <= q.EndTimeMillis
}

// InputProfile is the ingestion payload.
type InputProfile struct {
	Urn     string         `json:"urn" validate:"required"`
	Profile DatasetProfile `json:"profile"`
}

func (in *InputProfile) Validate() error {
	v := validate.Struct(in)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, v.Errors.One())
	}
	if in.Profile.TimestampMillis <= 0 {
		return fmt.Errorf("%w: profile timestampMillis must be positive", ErrInvalidQuery)
	}
	return nil
}

// ChartPoint is one plotted value of a time series.
type ChartPoint struct {
	TimeMs int64   `json:"timeMs"`
	Value  float64 `json:"value"`
}
