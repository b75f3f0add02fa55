package persistence

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"profiled/internal/models"
	"profiled/internal/persistence/interfaces"
	"profiled/internal/providers"
	"profiled/internal/repository"
)

var ErrSnapshotUnsupported = errors.New("repository does not support snapshots")

// FileManager writes the in-memory repository to a zstd compressed JSON file
// and loads it back on start.
type FileManager struct {
	snapshotter repository.SnapshotterInterface
	compressor  interfaces.CompressorInterface
	logger      providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, repo repository.ProfileRepositoryInterface, logger providers.Logger) *FileManager {
	snapshotter, _ := repo.(repository.SnapshotterInterface)
	return &FileManager{
		snapshotter: snapshotter,
		compressor:  compressor,
		logger:      logger,
	}
}

// Enabled reports whether the repository keeps state that needs snapshots.
func (f *FileManager) Enabled() bool {
	return f.snapshotter != nil
}

func (f *FileManager) SaveToFile(fileName string) error {
	if f.snapshotter == nil {
		return ErrSnapshotUnsupported
	}
	storage := f.snapshotter.Snapshot()

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	if f.snapshotter == nil {
		return ErrSnapshotUnsupported
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err != nil {
		return fmt.Errorf("corrupted snapshot %s: %w", fileName, err)
	}
	if storage.Version > models.StorageVersion {
		return fmt.Errorf("snapshot %s has version %d, newest supported is %d", fileName, storage.Version, models.StorageVersion)
	}
	if storage.Datasets == nil {
		storage.Datasets = make(map[string][]models.DatasetProfile)
	}

	f.snapshotter.Load(&storage)
	f.logger.Infof(providers.TypeApp, "Restored %d profiles of %d datasets from %s", storage.ProfileCount(), len(storage.Datasets), fileName)
	return nil
}
