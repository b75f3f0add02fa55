package history

import (
	"profiled/internal/lookback"
	"profiled/internal/models"
	"profiled/internal/series"

	"golang.org/x/text/language"
)

type chartKind int

const (
	tableChart chartKind = iota
	columnChart
)

type chartSpec struct {
	stat  series.StatName
	kind  chartKind
	title string
}

// Charts in display order. Titles are catalog keys.
var charts = []chartSpec{
	{stat: series.RowCount, kind: tableChart, title: "Row Count Over Time"},
	{stat: series.ColumnCount, kind: tableChart, title: "Column Count Over Time"},
	{stat: series.NullCount, kind: columnChart, title: "Null Count Over Time"},
	{stat: series.NullProportion, kind: columnChart, title: "Null Percentage Over Time"},
	{stat: series.UniqueCount, kind: columnChart, title: "Distinct Count Over Time"},
	{stat: series.UniqueProportion, kind: columnChart, title: "Distinct Percentage Over Time"},
}

type extractor func(profiles []models.DatasetProfile, fieldPath string, stat series.StatName) []models.ChartPoint

var extractors = map[chartKind]extractor{
	tableChart: func(profiles []models.DatasetProfile, _ string, stat series.StatName) []models.ChartPoint {
		return series.ExtractTableSeries(profiles, stat)
	},
	columnChart: series.ExtractFieldSeries,
}

type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type Chart struct {
	Stat   series.StatName     `json:"stat,omitempty"`
	Title  string              `json:"title"`
	Values []models.ChartPoint `json:"values"`
}

type Section struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Charts   []Chart `json:"charts"`
}

// Stats is everything needed to draw the view for the latest applied fetch.
type Stats struct {
	Urn               string                `json:"urn"`
	Title             string                `json:"title"`
	Subtitle          string                `json:"subtitle"`
	Language          string                `json:"language"`
	LookbackWindow    string                `json:"lookbackWindow"`
	LookbackWindows   []string              `json:"lookbackWindows"`
	DateRange         DateRange             `json:"dateRange"`
	TickInterval      lookback.DateInterval `json:"tickInterval"`
	Loading           bool                  `json:"loading"`
	Error             string                `json:"error,omitempty"`
	FieldPaths        []string              `json:"fieldPaths"`
	SelectedFieldPath string                `json:"selectedFieldPath"`
	ProfilingRuns     Section               `json:"profilingRuns"`
	TableStats        Section               `json:"tableStats"`
	ColumnStats       Section               `json:"columnStats"`
}

// Render derives the chart series from the current snapshots in the view's language.
func (v *View) Render() Stats {
	v.mu.Lock()
	tag := v.lang
	v.mu.Unlock()
	return v.RenderIn(tag)
}

func (v *View) RenderIn(tag language.Tag) Stats {
	v.mu.Lock()
	defer v.mu.Unlock()

	translate := func(key string) string { return key }
	if v.catalog != nil {
		translate = func(key string) string { return v.catalog.Translate(tag, key) }
	}

	tick, _ := lookback.TickInterval(v.selectedSize.Interval)

	stats := Stats{
		Urn:               v.urn,
		Title:             translate("Profiling History"),
		Subtitle:          translate("Viewing profiling history for the past") + " " + v.selectedLabel,
		Language:          tag.String(),
		LookbackWindow:    v.selectedLabel,
		LookbackWindows:   lookback.Labels(),
		DateRange:         DateRange{Start: v.window.StartMillis(), End: v.window.EndMillis()},
		TickInterval:      tick,
		Loading:           v.loading,
		FieldPaths:        append([]string{}, v.fieldPaths...),
		SelectedFieldPath: v.selectedField,
		ProfilingRuns: Section{
			Title:  translate("Profiling Runs"),
			Charts: []Chart{{Title: translate("Profiling Runs"), Values: series.ProfilingRuns(v.profiles)}},
		},
		TableStats:  Section{Title: translate("Historical Table Stats")},
		ColumnStats: Section{Title: translate("Historical Column Stats")},
	}
	if v.err != nil {
		stats.Error = v.err.Error()
	}
	if v.selectedField != "" {
		stats.ColumnStats.Subtitle = translate("Viewing stats for column") + " " + v.selectedField
	}

	for _, spec := range charts {
		chart := Chart{
			Stat:   spec.stat,
			Title:  translate(spec.title),
			Values: extractors[spec.kind](v.profiles, v.selectedField, spec.stat),
		}
		if spec.kind == tableChart {
			stats.TableStats.Charts = append(stats.TableStats.Charts, chart)
		} else {
			stats.ColumnStats.Charts = append(stats.ColumnStats.Charts, chart)
		}
	}
	return stats
}

