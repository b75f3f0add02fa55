package repository

import (
	"context"
	"profiled/internal/models"
	"sort"
	"sync"
)

// MemoryRepository keeps profiles per urn in ingestion order.
type MemoryRepository struct {
	mu       sync.RWMutex
	datasets map[string][]models.DatasetProfile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{datasets: make(map[string][]models.DatasetProfile)}
}

func (r *MemoryRepository) Save(_ context.Context, urn string, profile models.DatasetProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[urn] = append(r.datasets[urn], profile)
	return nil
}

func (r *MemoryRepository) Query(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.DatasetProfile, 0)
	for _, profile := range r.datasets[q.Urn] {
		if q.Contains(profile.TimestampMillis) {
			result = append(result, profile)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Urns(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	urns := make([]string, 0, len(r.datasets))
	for urn := range r.datasets {
		urns = append(urns, urn)
	}
	sort.Strings(urns)
	return urns, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, profiles := range r.datasets {
		n += len(profiles)
	}
	return n, nil
}

func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) Snapshot() *models.Storage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	datasets := make(map[string][]models.DatasetProfile, len(r.datasets))
	for urn, profiles := range r.datasets {
		datasets[urn] = append([]models.DatasetProfile(nil), profiles...)
	}
	return &models.Storage{Version: models.StorageVersion, Datasets: datasets}
}

// Load replaces the repository contents with storage.
func (r *MemoryRepository) Load(storage *models.Storage) {
	datasets := make(map[string][]models.DatasetProfile, len(storage.Datasets))
	for urn, profiles := range storage.Datasets {
		datasets[urn] = append([]models.DatasetProfile(nil), profiles...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets = datasets
}
