package models

const StorageVersion = 1

// Storage is the on-disk snapshot of the in-memory profile repository.
// Profiles keep their ingestion order per urn.
type Storage struct {
	Version  int                         `json:"version"`
	Datasets map[string][]DatasetProfile `json:"datasets"`
}

func (s *Storage) ProfileCount() int {
	n := 0
	for _, profiles := range s.Datasets {
		n += len(profiles)
	}
	return n
}
