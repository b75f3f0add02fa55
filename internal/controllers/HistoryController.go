package controllers

import (
	"context"
	"net/http"
	"profiled/internal/history"
	"profiled/internal/i18n"
	"profiled/internal/lookback"
	"profiled/internal/providers"
	"profiled/internal/services"
	"profiled/internal/structures"
	"time"
)

type HistoryController struct {
	logger        providers.Logger
	service       services.ProfileServiceInterface
	metrics       providers.MetricsProviderInterface
	catalog       *i18n.Catalog
	defaultWindow string
	fetchTimeout  time.Duration
}

func NewHistoryController(conf *structures.Config, logger providers.Logger, service services.ProfileServiceInterface, metrics providers.MetricsProviderInterface, catalog *i18n.Catalog) *HistoryController {
	defaultWindow := conf.History.DefaultWindow
	if defaultWindow == "" {
		defaultWindow = lookback.DefaultLookbackWindow
	}
	return &HistoryController{
		logger:        logger,
		service:       service,
		metrics:       metrics,
		catalog:       catalog,
		defaultWindow: defaultWindow,
		fetchTimeout:  conf.History.FetchTimeout,
	}
}

// GetHistory renders the historical stats view of one dataset.
// Query: urn (required), window, field, lang.
func (hc *HistoryController) GetHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	urn := query.Get("urn")
	if urn == "" {
		http.Error(w, "urn is required", http.StatusBadRequest)
		return
	}
	window := query.Get("window")
	if window == "" {
		window = hc.defaultWindow
	}

	ctx := r.Context()
	if hc.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.fetchTimeout)
		defer cancel()
	}

	view := history.NewView(urn, hc.service,
		history.WithLogger(hc.logger),
		history.WithMetrics(hc.metrics),
		history.WithCatalog(hc.catalog),
	)
	defer view.Close()

	done, err := view.SelectLookbackWindow(ctx, window)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
		http.Error(w, "Gateway Timeout", http.StatusGatewayTimeout)
		return
	}

	if err := view.Err(); err != nil {
		if isBadRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hc.logger.Errorf(providers.TypeGet, "History fetch for %s failed: %s", urn, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if field := query.Get("field"); field != "" {
		if err := view.SelectFieldPath(field); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, http.StatusOK, view.RenderIn(hc.catalog.Match(query.Get("lang"))))
}
