package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"profiled/internal/repository"
	"profiled/internal/structures"
	"profiled/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1 * time.Second,
		},
	}
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.dat")
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}

	s := NewScheduler(testConfig(path), logger, NewFileManager(&testutil.MockCompressor{}, seededRepository(t), logger), metrics)
	require.NoError(t, s.Persist())
	s.Close()
	assert.Equal(t, 1, metrics.PersistenceObserved)

	restored := repository.NewMemoryRepository()
	s = NewScheduler(testConfig(path), logger, NewFileManager(&testutil.MockCompressor{}, restored, logger), metrics)
	require.NoError(t, s.Restore())

	count, _ := restored.Count(context.Background())
	assert.Equal(t, 3, count)
}

func TestScheduler_PersistError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.dat")
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	compressor := &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("disk full") },
	}

	s := NewScheduler(testConfig(path), logger, NewFileManager(compressor, seededRepository(t), logger), metrics)
	assert.Error(t, s.Persist())
	assert.Equal(t, 1, logger.Count("error"))
	assert.Equal(t, 1, metrics.PersistenceObserved)
}

func TestScheduler_PeriodicSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.dat")
	logger := &testutil.MockLogger{}

	s := NewScheduler(testConfig(path), logger, NewFileManager(&testutil.MockCompressor{}, seededRepository(t), logger), &testutil.MockMetrics{})
	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNewScheduler_NoopWithoutFile(t *testing.T) {
	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig(""), logger, NewFileManager(&testutil.MockCompressor{}, seededRepository(t), logger), &testutil.MockMetrics{})

	_, ok := s.(*noopScheduler)
	assert.True(t, ok)
	s.Init()
	s.Stop()
	assert.NoError(t, s.Restore())
	assert.NoError(t, s.Persist())
	s.Close()
}

func TestNewScheduler_NoopForSQLite(t *testing.T) {
	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	defer repo.Close()

	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig(filepath.Join(t.TempDir(), "profiles.dat")), logger, NewFileManager(&testutil.MockCompressor{}, repo, logger), &testutil.MockMetrics{})

	_, ok := s.(*noopScheduler)
	assert.True(t, ok)
}
