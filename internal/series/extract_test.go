package series

import (
	"profiled/internal/models"
	"profiled/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func field(path string, nullCount int64) models.FieldProfile {
	return models.FieldProfile{FieldPath: path, NullCount: testutil.Int64(nullCount)}
}

func TestExtractTableSeries_SkipsMissingStat(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 100, RowCount: testutil.Int64(5)},
		{TimestampMillis: 200},
		{TimestampMillis: 300, RowCount: testutil.Int64(9)},
	}

	points := ExtractTableSeries(profiles, RowCount)

	assert.Equal(t, []models.ChartPoint{
		{TimeMs: 100, Value: 5},
		{TimeMs: 300, Value: 9},
	}, points)
}

func TestExtractTableSeries_KeepsInputOrder(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 300, ColumnCount: testutil.Int64(3)},
		{TimestampMillis: 100, ColumnCount: testutil.Int64(1)},
		{TimestampMillis: 200, ColumnCount: testutil.Int64(2)},
	}

	points := ExtractTableSeries(profiles, ColumnCount)

	assert.Equal(t, []int64{300, 100, 200}, []int64{points[0].TimeMs, points[1].TimeMs, points[2].TimeMs})
}

func TestExtractTableSeries_ZeroIsPresent(t *testing.T) {
	profiles := []models.DatasetProfile{{TimestampMillis: 1, RowCount: testutil.Int64(0)}}
	assert.Equal(t, []models.ChartPoint{{TimeMs: 1, Value: 0}}, ExtractTableSeries(profiles, RowCount))
}

func TestExtractTableSeries_UnknownStat(t *testing.T) {
	profiles := []models.DatasetProfile{{TimestampMillis: 1, RowCount: testutil.Int64(3)}}
	assert.Empty(t, ExtractTableSeries(profiles, "bogus"))
	assert.Empty(t, ExtractTableSeries(nil, RowCount))
}

func TestExtractFieldSeries_OnePointPerSnapshot(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 100, FieldProfiles: []models.FieldProfile{field("a", 1), field("b", 7)}},
		{TimestampMillis: 200, FieldProfiles: []models.FieldProfile{field("b", 8), field("a", 2)}},
	}

	points := ExtractFieldSeries(profiles, "a", NullCount)

	assert.Equal(t, []models.ChartPoint{{TimeMs: 100, Value: 1}, {TimeMs: 200, Value: 2}}, points)
}

func TestExtractFieldSeries_DuplicatePathDropsSnapshot(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 100, FieldProfiles: []models.FieldProfile{field("a", 1), field("a", 2)}},
		{TimestampMillis: 200, FieldProfiles: []models.FieldProfile{field("a", 3)}},
	}

	first := ExtractFieldSeries(profiles, "a", NullCount)
	second := ExtractFieldSeries(profiles, "a", NullCount)

	assert.Equal(t, []models.ChartPoint{{TimeMs: 200, Value: 3}}, first)
	assert.Equal(t, first, second)
}

func TestExtractFieldSeries_DuplicateWithoutStatStillCountsOnce(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 100, FieldProfiles: []models.FieldProfile{
			{FieldPath: "a"},
			field("a", 4),
		}},
	}
	assert.Equal(t, []models.ChartPoint{{TimeMs: 100, Value: 4}}, ExtractFieldSeries(profiles, "a", NullCount))
}

func TestExtractFieldSeries_MissingFieldOrStat(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 100},
		{TimestampMillis: 200, FieldProfiles: []models.FieldProfile{field("b", 1)}},
		{TimestampMillis: 300, FieldProfiles: []models.FieldProfile{{FieldPath: "a"}}},
		{TimestampMillis: 400, FieldProfiles: []models.FieldProfile{
			{FieldPath: "a", NullProportion: testutil.Float64(0.25)},
		}},
	}

	assert.Empty(t, ExtractFieldSeries(profiles, "a", NullCount))
	assert.Equal(t, []models.ChartPoint{{TimeMs: 400, Value: 0.25}}, ExtractFieldSeries(profiles, "a", NullProportion))
}

func TestExtractFieldSeries_NumericStrings(t *testing.T) {
	profiles := []models.DatasetProfile{
		{TimestampMillis: 100, FieldProfiles: []models.FieldProfile{{FieldPath: "price", Mean: testutil.String("12.5")}}},
		{TimestampMillis: 200, FieldProfiles: []models.FieldProfile{{FieldPath: "price", Mean: testutil.String("n/a")}}},
	}
	assert.Equal(t, []models.ChartPoint{{TimeMs: 100, Value: 12.5}}, ExtractFieldSeries(profiles, "price", Mean))
}

func TestAllFieldPaths_UnionWithoutDuplicates(t *testing.T) {
	profiles := []models.DatasetProfile{
		{FieldProfiles: []models.FieldProfile{{FieldPath: "b"}, {FieldPath: "a"}}},
		{FieldProfiles: []models.FieldProfile{{FieldPath: "c"}, {FieldPath: "b"}}},
		{},
	}
	assert.Equal(t, []string{"a", "b", "c"}, AllFieldPaths(profiles))
}

func TestAllFieldPaths_OrderIndependent(t *testing.T) {
	forward := []models.DatasetProfile{
		{FieldProfiles: []models.FieldProfile{{FieldPath: "a"}, {FieldPath: "b"}}},
		{FieldProfiles: []models.FieldProfile{{FieldPath: "b"}, {FieldPath: "c"}}},
	}
	backward := []models.DatasetProfile{forward[1], forward[0]}
	assert.Equal(t, AllFieldPaths(forward), AllFieldPaths(backward))
}

func TestAllFieldPaths_Empty(t *testing.T) {
	assert.Empty(t, AllFieldPaths(nil))
}

func TestProfilingRuns(t *testing.T) {
	profiles := []models.DatasetProfile{{TimestampMillis: 5}, {TimestampMillis: 9}}
	assert.Equal(t, []models.ChartPoint{{TimeMs: 5, Value: 1}, {TimeMs: 9, Value: 1}}, ProfilingRuns(profiles))
}
