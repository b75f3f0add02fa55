package repository

import (
	"context"
	"fmt"
	"profiled/internal/models"
	"profiled/internal/providers"
	"profiled/internal/structures"
)

type ProfileRepositoryInterface interface {
	Save(ctx context.Context, urn string, profile models.DatasetProfile) error
	Query(ctx context.Context, q models.ProfileQuery) ([]models.DatasetProfile, error)
	Urns(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// SnapshotterInterface is implemented by repositories that keep their data in
// memory and need a file snapshot to survive restarts.
type SnapshotterInterface interface {
	Snapshot() *models.Storage
	Load(storage *models.Storage)
}

func NewProfileRepository(conf *structures.Config, logger providers.Logger) (ProfileRepositoryInterface, error) {
	switch conf.Storage.Driver {
	case "sqlite":
		repo, err := NewSQLiteRepository(conf.Storage.Path)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Using sqlite profile storage at %s", conf.Storage.Path)
		return repo, nil
	case "memory", "":
		logger.Infof(providers.TypeApp, "Using in-memory profile storage")
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", conf.Storage.Driver)
	}
}
