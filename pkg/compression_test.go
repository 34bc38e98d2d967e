package dorothea

import (
	"encoding/json"
	"testing"

	"github.com/jmbenlloch/go-hdf5"
	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		name     string
		useBlosc bool
		level    int
	}{
		{"NOCOMPR", false, 0},
		{"ZLIB1", false, 1},
		{"ZLIB4", false, 4},
		{"ZLIB5", false, 5},
		{"ZLIB9", false, 9},
		{"BLOSC5", true, 5},
		{"BLZ4HC5", true, 5},
	}
	for _, c := range cases {
		parsed, err := ParseCompression(c.name)
		require.NoError(err, c.name)
		require.Equal(c.name, parsed.Name)
		require.Equal(c.useBlosc, parsed.UseBlosc, c.name)
		require.Equal(c.level, parsed.Level, c.name)
	}

	blosc, _ := ParseCompression("BLOSC5")
	require.Equal(hdf5.BLOSC_BLOSCLZ, blosc.Algorithm)
	require.Equal(hdf5.BLOSC_SHUFFLE, blosc.Shuffle)

	lz4hc, _ := ParseCompression("BLZ4HC5")
	require.Equal(hdf5.BLOSC_LZ4HC, lz4hc.Algorithm)
}

func TestParseCompressionUnknownName(t *testing.T) {
	require := require.New(t)

	_, err := ParseCompression("GZIP")
	require.Error(err)
	require.Contains(err.Error(), "invalid compression")
}

func TestCompressionJSON(t *testing.T) {
	require := require.New(t)

	var c Compression
	require.NoError(json.Unmarshal([]byte(`"ZLIB9"`), &c))
	require.Equal(9, c.Level)
	require.False(c.UseBlosc)

	out, err := json.Marshal(c)
	require.NoError(err)
	require.Equal(`"ZLIB9"`, string(out))

	require.Error(json.Unmarshal([]byte(`"LZMA"`), &c))
}

func TestCompressionInConfiguration(t *testing.T) {
	require := require.New(t)

	var config Configuration
	config.Compression = DefaultCompression
	require.NoError(json.Unmarshal([]byte(`{"compression": "BLOSC5"}`), &config))
	require.True(config.Compression.UseBlosc)
	require.Equal("BLOSC5", config.Compression.Name)

	// absent key keeps the default
	config.Compression = DefaultCompression
	require.NoError(json.Unmarshal([]byte(`{"run_number": 1}`), &config))
	require.Equal("ZLIB4", config.Compression.Name)
}
