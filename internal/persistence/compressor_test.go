package persistence

import (
	"profiled/internal/models"
	"profiled/internal/testutil"
	"strconv"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotPayload(t *testing.T, profiles int) []byte {
	t.Helper()
	storage := models.Storage{Version: models.StorageVersion, Datasets: map[string][]models.DatasetProfile{}}
	for i := 0; i < profiles; i++ {
		urn := "urn:li:dataset:" + strconv.Itoa(i%10)
		storage.Datasets[urn] = append(storage.Datasets[urn], models.DatasetProfile{
			TimestampMillis: int64(1_700_000_000_000 + i),
			RowCount:        testutil.Int64(int64(i)),
			FieldProfiles: []models.FieldProfile{
				{FieldPath: "id", NullCount: testutil.Int64(0), UniqueProportion: testutil.Float64(1)},
				{FieldPath: "name", NullCount: testutil.Int64(int64(i % 7))},
			},
		})
	}
	data, err := json.Marshal(storage)
	require.NoError(t, err)
	return data
}

func TestZstdCompression_Roundtrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := snapshotPayload(t, 3)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_EmptyData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	compressed, err := c.Compress([]byte{})
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestZstdCompression_LargeSnapshot(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := snapshotPayload(t, 10_000)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original)/4)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_DecompressInvalidData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("not valid zstd data"))
	assert.Error(t, err)
}
