package models

import (
	"github.com/spf13/cast"
)

// DatasetProfile is one point-in-time measurement of a dataset. Nil stats
// were not collected for this run.
type DatasetProfile struct {
	TimestampMillis int64          `json:"timestampMillis"`
	RowCount        *int64         `json:"rowCount,omitempty"`
	ColumnCount     *int64         `json:"columnCount,omitempty"`
	SizeInBytes     *int64         `json:"sizeInBytes,omitempty"`
	FieldProfiles   []FieldProfile `json:"fieldProfiles,omitempty"`
}

// FieldProfile is one column's measurement inside a DatasetProfile.
// Min, Max, Mean, Median and Stdev are reported as strings by profilers and
// only count as numeric stats when they parse as numbers.
type FieldProfile struct {
	FieldPath        string   `json:"fieldPath"`
	UniqueCount      *int64   `json:"uniqueCount,omitempty"`
	UniqueProportion *float64 `json:"uniqueProportion,omitempty"`
	NullCount        *int64   `json:"nullCount,omitempty"`
	NullProportion   *float64 `json:"nullProportion,omitempty"`
	Min              *string  `json:"min,omitempty"`
	Max              *string  `json:"max,omitempty"`
	Mean             *string  `json:"mean,omitempty"`
	Median           *string  `json:"median,omitempty"`
	Stdev            *string  `json:"stdev,omitempty"`
}

var tableStats = map[string]func(p *DatasetProfile) (float64, bool){
	"rowCount":    func(p *DatasetProfile) (float64, bool) { return intStat(p.RowCount) },
	"columnCount": func(p *DatasetProfile) (float64, bool) { return intStat(p.ColumnCount) },
	"sizeInBytes": func(p *DatasetProfile) (float64, bool) { return intStat(p.SizeInBytes) },
}

var fieldStats = map[string]func(f *FieldProfile) (float64, bool){
	"uniqueCount":      func(f *FieldProfile) (float64, bool) { return intStat(f.UniqueCount) },
	"uniqueProportion": func(f *FieldProfile) (float64, bool) { return floatStat(f.UniqueProportion) },
	"nullCount":        func(f *FieldProfile) (float64, bool) { return intStat(f.NullCount) },
	"nullProportion":   func(f *FieldProfile) (float64, bool) { return floatStat(f.NullProportion) },
	"min":              func(f *FieldProfile) (float64, bool) { return stringStat(f.Min) },
	"max":              func(f *FieldProfile) (float64, bool) { return stringStat(f.Max) },
	"mean":             func(f *FieldProfile) (float64, bool) { return stringStat(f.Mean) },
	"median":           func(f *FieldProfile) (float64, bool) { return stringStat(f.Median) },
	"stdev":            func(f *FieldProfile) (float64, bool) { return stringStat(f.Stdev) },
}

// Stat returns the named table-level statistic and whether it is present.
// Unknown names are reported as absent.
func (p *DatasetProfile) Stat(name string) (float64, bool) {
	get, ok := tableStats[name]
	if !ok {
		return 0, false
	}
	return get(p)
}

// Stat returns the named column statistic and whether it is present.
func (f *FieldProfile) Stat(name string) (float64, bool) {
	get, ok := fieldStats[name]
	if !ok {
		return 0, false
	}
	return get(f)
}

func intStat(v *int64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}

func floatStat(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func stringStat(v *string) (float64, bool) {
	if v == nil || *v == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(*v)
	if err != nil {
		return 0, false
	}
	return f, true
}
