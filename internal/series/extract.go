// Package series turns dataset profile snapshots into chart series.
// Output order always follows the order of the input snapshots.
package series

import (
	"profiled/internal/models"
	"sort"
)

type StatName string

const (
	RowCount         StatName = "rowCount"
	ColumnCount      StatName = "columnCount"
	SizeInBytes      StatName = "sizeInBytes"
	NullCount        StatName = "nullCount"
	NullProportion   StatName = "nullProportion"
	UniqueCount      StatName = "uniqueCount"
	UniqueProportion StatName = "uniqueProportion"
	Min              StatName = "min"
	Max              StatName = "max"
	Mean             StatName = "mean"
	Median           StatName = "median"
	Stdev            StatName = "stdev"
)

// ExtractTableSeries emits one point per profile where stat is present.
func ExtractTableSeries(profiles []models.DatasetProfile, stat StatName) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(profiles))
	for i := range profiles {
		value, ok := profiles[i].Stat(string(stat))
		if !ok {
			continue
		}
		points = append(points, models.ChartPoint{TimeMs: profiles[i].TimestampMillis, Value: value})
	}
	return points
}

// ExtractFieldSeries emits a point for a profile only when exactly one of its
// field profiles matches fieldPath and carries stat. A path listed twice in
// the same profile is treated as missing data for that profile.
func ExtractFieldSeries(profiles []models.DatasetProfile, fieldPath string, stat StatName) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(profiles))
	for i := range profiles {
		var (
			value   float64
			matches int
		)
		for j := range profiles[i].FieldProfiles {
			field := &profiles[i].FieldProfiles[j]
			if field.FieldPath != fieldPath {
				continue
			}
			if v, ok := field.Stat(string(stat)); ok {
				value = v
				matches++
			}
		}
		if matches == 1 {
			points = append(points, models.ChartPoint{TimeMs: profiles[i].TimestampMillis, Value: value})
		}
	}
	return points
}

// AllFieldPaths returns every field path seen in any profile, de-duplicated
// and sorted so callers can rely on a stable first element.
func AllFieldPaths(profiles []models.DatasetProfile) []string {
	seen := make(map[string]struct{})
	for i := range profiles {
		for j := range profiles[i].FieldProfiles {
			seen[profiles[i].FieldProfiles[j].FieldPath] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ProfilingRuns marks each profiling run with a point of value 1.
func ProfilingRuns(profiles []models.DatasetProfile) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(profiles))
	for i := range profiles {
		points = append(points, models.ChartPoint{TimeMs: profiles[i].TimestampMillis, Value: 1})
	}
	return points
}
