package services

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
	"profiled/internal/models"
	"profiled/internal/providers"
	"profiled/internal/repository"
	"sync"
)

type ProfileServiceInterface interface {
	AddProfile(ctx context.Context, input *models.InputProfile) error
	GetDataProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error)
	FetchProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error)
	GetUrns(ctx context.Context) ([]string, error)
	GetProfileCount(ctx context.Context) (int, error)
}

// ProfileService answers profile queries cache-first: identical queries are
// served from the cache until a new profile for the same urn is ingested.
type ProfileService struct {
	repo    repository.ProfileRepositoryInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	group   singleflight.Group

	mu          sync.RWMutex
	generations map[string]uint64
}

func NewProfileService(repo repository.ProfileRepositoryInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) ProfileServiceInterface {
	return &ProfileService{
		repo:        repo,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

func (ps *ProfileService) AddProfile(ctx context.Context, input *models.InputProfile) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := ps.repo.Save(ctx, input.Urn, input.Profile); err != nil {
		return err
	}

	ps.mu.Lock()
	ps.generations[input.Urn]++
	ps.mu.Unlock()

	ps.metrics.IncProfilesIngested()
	if count, err := ps.repo.Count(ctx); err == nil {
		ps.metrics.SetProfilesTotal(count)
	}
	return nil
}

// cacheKey embeds the urn generation so that ingesting a profile makes every
// cached query of that urn unreachable.
func (ps *ProfileService) cacheKey(q models.ProfileQuery) string {
	ps.mu.RLock()
	gen := ps.generations[q.Urn]
	ps.mu.RUnlock()
	return fmt.Sprintf("profiles:%s:%d:%d:%d", q.Urn, gen, q.StartTimeMillis, q.EndTimeMillis)
}

func (ps *ProfileService) GetDataProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := ps.cacheKey(q)
	if data, ok := ps.cache.Get(key); ok {
		var profiles []models.DatasetProfile
		if err := json.Unmarshal(data, &profiles); err == nil {
			return profiles, nil
		}
		ps.logger.Warnf(providers.TypeApp, "Dropping undecodable cache entry %s", key)
	}

	// The shared query must outlive any single caller, so it runs detached
	// from cancellation and each caller stops waiting on its own ctx.
	flight := ps.group.DoChan(key, func() (interface{}, error) {
		profiles, err := ps.repo.Query(context.WithoutCancel(ctx), q)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(profiles)
		if err != nil {
			return nil, err
		}
		ps.cache.Set(key, data)
		return profiles, nil
	})

	var result singleflight.Result
	select {
	case result = <-flight:
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch profiles for %s: %w", q.Urn, ctx.Err())
	}
	if result.Err != nil {
		return nil, fmt.Errorf("fetch profiles for %s: %w", q.Urn, result.Err)
	}

	profiles := result.Val.([]models.DatasetProfile)
	out := make([]models.DatasetProfile, len(profiles))
	copy(out, profiles)
	return out, nil
}

// FetchProfiles lets the service act as a history.Fetcher.
func (ps *ProfileService) FetchProfiles(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error) {
	return ps.GetDataProfiles(ctx, q)
}

func (ps *ProfileService) GetUrns(ctx context.Context) ([]string, error) {
	return ps.repo.Urns(ctx)
}

func (ps *ProfileService) GetProfileCount(ctx context.Context) (int, error) {
	return ps.repo.Count(ctx)
}
