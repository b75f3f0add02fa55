package internal

import (
	"net/http"
	"net/http/httptest"
	"profiled/internal/controllers"
	"profiled/internal/history"
	"profiled/internal/i18n"
	"profiled/internal/repository"
	"profiled/internal/services"
	"profiled/internal/structures"
	"profiled/internal/testutil"
	"strconv"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler(t *testing.T) (http.Handler, *testutil.MockMetrics) {
	t.Helper()
	conf := &structures.Config{History: structures.HistoryConfig{FetchTimeout: 2 * time.Second}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	catalog, err := i18n.NewCatalog("en")
	require.NoError(t, err)

	svc := services.NewProfileService(repository.NewMemoryRepository(), testutil.NewMockCache(), metrics, logger)
	router := InitRoutes(
		controllers.NewApiController(logger, svc),
		controllers.NewHistoryController(conf, logger, svc, metrics, catalog),
		logger,
	)
	return NewHandler(controllers.NewHealthController(svc), conf, router, metrics), metrics
}

func TestInitRoutes_RegistersRoutes(t *testing.T) {
	logger := &testutil.MockLogger{}
	svc := &testutil.MockProfileService{}
	router := InitRoutes(
		controllers.NewApiController(logger, svc),
		controllers.NewHistoryController(&structures.Config{}, logger, svc, &testutil.MockMetrics{}, nil),
		logger,
	)

	urls := make([]string, 0)
	for _, r := range router.GetRoutes() {
		urls = append(urls, r.Url)
	}
	assert.ElementsMatch(t, []string{"/profiles", "/profiles/query", "/urns", "/windows", "/history"}, urls)
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	handler, _ := testHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profiles", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/history", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandler_IngestThenHistory(t *testing.T) {
	handler, metrics := testHandler(t)
	now := time.Now()

	for i, rows := range []int{10, 12} {
		body := `{"urn":"urn:li:dataset:orders","profile":{"timestampMillis":` +
			jsonInt(now.Add(-time.Duration(2-i)*time.Hour).UnixMilli()) +
			`,"rowCount":` + jsonInt(int64(rows)) +
			`,"fieldProfiles":[{"fieldPath":"id","nullCount":0}]}}`
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history?urn=urn:li:dataset:orders&window=1+day", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var stats history.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, "1 day", stats.LookbackWindow)
	assert.Equal(t, "id", stats.SelectedFieldPath)
	require.Len(t, stats.TableStats.Charts[0].Values, 2)
	assert.Equal(t, float64(12), stats.TableStats.Charts[0].Values[1].Value)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/urns", nil))
	assert.JSONEq(t, `["urn:li:dataset:orders"]`, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"profiles":2`)

	assert.Equal(t, 2, metrics.Ingested)
}

func TestHandler_UnknownPath(t *testing.T) {
	handler, _ := testHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
