// Package history drives the historical stats view of one dataset: it owns
// the selected lookback window and column, fetches profile snapshots for the
// window and derives the chart series from the latest applied snapshots.
package history

import (
	"context"
	"errors"
	"fmt"
	"profiled/internal/i18n"
	"profiled/internal/lookback"
	"profiled/internal/models"
	"profiled/internal/providers"
	"profiled/internal/series"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/text/language"
)

var ErrUnknownFieldPath = errors.New("unknown field path")

// Fetcher loads the profiles of one dataset for a time range.
// Implementations may answer from a cache.
type Fetcher interface {
	FetchProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error)
}

type FetcherFunc func(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error)

func (f FetcherFunc) FetchProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	return f(ctx, q)
}

type Option func(v *View)

func WithLogger(logger providers.Logger) Option {
	return func(v *View) { v.logger = logger }
}

func WithMetrics(metrics providers.MetricsProviderInterface) Option {
	return func(v *View) { v.metrics = metrics }
}

func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

// WithCatalog makes the view follow the catalog's process language until
// WithLanguage pins a language for this view.
func WithCatalog(catalog *i18n.Catalog) Option {
	return func(v *View) { v.catalog = catalog }
}

func WithLanguage(tag language.Tag) Option {
	return func(v *View) {
		v.lang = tag
		v.pinnedLang = true
	}
}

// View is safe for concurrent use. Fetches complete on their own goroutines
// and only the most recently issued one is applied.
type View struct {
	urn     string
	fetcher Fetcher
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	catalog *i18n.Catalog
	now     func() time.Time

	generation  atomic.Uint64
	unsubscribe func()

	mu            sync.Mutex
	lang          language.Tag
	pinnedLang    bool
	selectedLabel string
	selectedSize  lookback.WindowSize
	window        lookback.ResolvedWindow
	selectedField string
	profiles      []models.DatasetProfile
	fieldPaths    []string
	loading       bool
	err           error
}

func NewView(urn string, fetcher Fetcher, opts ...Option) *View {
	v := &View{
		urn:           urn,
		fetcher:       fetcher,
		now:           time.Now,
		lang:          language.English,
		selectedLabel: lookback.DefaultLookbackWindow,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.selectedSize, _ = lookback.ResolveBySelectionLabel(v.selectedLabel)

	if v.catalog != nil && !v.pinnedLang {
		v.lang = v.catalog.Language()
		v.unsubscribe = v.catalog.Subscribe(func(tag language.Tag) {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.lang = tag
		})
	}
	return v
}

// Close detaches the view from catalog language changes.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Activate issues the fetch for the initially selected window.
func (v *View) Activate(ctx context.Context) (<-chan struct{}, error) {
	v.mu.Lock()
	label := v.selectedLabel
	v.mu.Unlock()
	return v.SelectLookbackWindow(ctx, label)
}

// SelectLookbackWindow switches to label and issues exactly one fetch for the
// resolved window. The returned channel is closed once that fetch has been
// applied or discarded as superseded.
func (v *View) SelectLookbackWindow(ctx context.Context, label string) (<-chan struct{}, error) {
	size, err := lookback.ResolveBySelectionLabel(label)
	if err != nil {
		return nil, err
	}
	window, err := lookback.Resolve(size, v.now())
	if err != nil {
		return nil, err
	}

	query := models.ProfileQuery{
		Urn:             v.urn,
		StartTimeMillis: window.StartMillis(),
		EndTimeMillis:   window.EndMillis(),
	}

	v.mu.Lock()
	gen := v.generation.Inc()
	v.selectedLabel = label
	v.selectedSize = size
	v.window = window
	v.loading = true
	v.mu.Unlock()

	v.incFetches(providers.FetchIssued)
	v.debugf("fetch #%d issued for %s (%s)", gen, v.urn, label)

	done := make(chan struct{})
	go func() {
		defer close(done)
		profiles, err := v.fetcher.FetchProfiles(ctx, query)
		v.apply(gen, profiles, err)
	}()
	return done, nil
}

func (v *View) apply(gen uint64, profiles []models.DatasetProfile, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation.Load() {
		v.incFetches(providers.FetchDiscarded)
		v.debugf("fetch #%d for %s superseded by #%d", gen, v.urn, v.generation.Load())
		return
	}

	v.loading = false
	if err != nil {
		v.err = err
		v.incFetches(providers.FetchFailed)
		if v.logger != nil {
			v.logger.Warnf(providers.TypeApp, "Profile fetch for %s failed: %s", v.urn, err)
		}
		return
	}

	v.err = nil
	v.profiles = profiles
	v.fieldPaths = series.AllFieldPaths(profiles)
	v.syncSelectedField()
	v.incFetches(providers.FetchApplied)
}

// syncSelectedField keeps the current column when the new snapshots still
// contain it and otherwise falls back to the first known column.
func (v *View) syncSelectedField() {
	for _, path := range v.fieldPaths {
		if path == v.selectedField {
			return
		}
	}
	if len(v.fieldPaths) > 0 {
		v.selectedField = v.fieldPaths[0]
		return
	}
	v.selectedField = ""
}

func (v *View) SelectFieldPath(path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, known := range v.fieldPaths {
		if known == path {
			v.selectedField = path
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownFieldPath, path)
}

func (v *View) SelectedLookbackWindow() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedLabel
}

func (v *View) SelectedFieldPath() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedField
}

func (v *View) FieldPaths() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.fieldPaths...)
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err is the error of the latest applied fetch, nil once a later fetch succeeds.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) incFetches(outcome string) {
	if v.metrics != nil {
		v.metrics.IncHistoryFetches(outcome)
	}
}

func (v *View) debugf(format string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Debugf(providers.TypeApp, format, args...)
	}
}
