package testutil

import (
	"context"
	"profiled/internal/models"
	"profiled/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries with the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, entry := range m.Logs {
		if entry.Level == level {
			n++
		}
	}
	return n
}

// MockProfileService implements services.ProfileServiceInterface.
type MockProfileService struct {
	mu         sync.Mutex
	AddCalls   []*models.InputProfile
	AddErr     error
	Profiles   []models.DatasetProfile
	QueryErr   error
	Queries    []models.ProfileQuery
	UrnsList   []string
	UrnsErr    error
	CountValue int
	CountErr   error
}

func (m *MockProfileService) AddProfile(_ context.Context, input *models.InputProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddErr != nil {
		return m.AddErr
	}
	m.AddCalls = append(m.AddCalls, input)
	return nil
}

func (m *MockProfileService) GetDataProfiles(_ context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, q)
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.Profiles, nil
}

func (m *MockProfileService) FetchProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	return m.GetDataProfiles(ctx, q)
}

func (m *MockProfileService) GetUrns(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UrnsList, m.UrnsErr
}

func (m *MockProfileService) GetProfileCount(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CountValue, m.CountErr
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Gets int
	Hits int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	}
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                  sync.Mutex
	Fetches             map[string]int
	Ingested            int
	ProfilesTotal       int
	PersistenceObserved int
	CacheHits           int
	CacheMisses         int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObserved++
}

func (m *MockMetrics) IncHistoryFetches(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fetches == nil {
		m.Fetches = make(map[string]int)
	}
	m.Fetches[outcome]++
}

func (m *MockMetrics) FetchCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fetches[outcome]
}

func (m *MockMetrics) IncProfilesIngested() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ingested++
}

func (m *MockMetrics) SetProfilesTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProfilesTotal = count
}

// Int64 and Float64 return pointers for optional stat fields.
func Int64(v int64) *int64 { return &v }

func Float64(v float64) *float64 { return &v }

func String(v string) *string { return &v }
