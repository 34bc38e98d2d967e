package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	require := require.New(t)

	path := writeConfigFile(t, `{
		"run_number": 8088,
		"files_in": "/data/8088/pmaps_*.h5",
		"file_out": "/data/8088/kdst.h5",
		"run_all": true
	}`)

	config, err := LoadConfiguration(path)
	require.NoError(err)
	require.Equal(8088, config.RunNumber)
	require.Equal(10000, config.NPrint)
	require.Equal("ZLIB4", config.Compression.Name)
	require.Equal(1.0, config.DriftV)
	require.Equal(1, config.S2NMax)
	require.Equal(1, config.S2NSipmMin)
	require.True(math.IsInf(config.S1EMax, 1))
	require.True(math.IsInf(config.S2HMax, 1))
	require.Equal("next.ific.uv.es", config.Host)
	require.Equal("NEXT100", config.DBName)
	require.Equal(-1, config.MaxEvents())
}

func TestLoadConfigurationOverrides(t *testing.T) {
	require := require.New(t)

	path := writeConfigFile(t, `{
		"run_number": 8088,
		"files_in": "/data/8088/pmaps_*.h5",
		"file_out": "/data/8088/kdst.h5",
		"nevents": 50000,
		"nprint": 500,
		"compression": "BLOSC5",
		"drift_v": 0.92,
		"s1_emin": 2, "s1_emax": 40,
		"s2_emin": 1000, "s2_emax": 25000,
		"s2_nmax": 3,
		"s2_nsipmmin": 5, "s2_nsipmmax": 500,
		"s2_ethr": 1.5,
		"no_db": true
	}`)

	config, err := LoadConfiguration(path)
	require.NoError(err)
	require.Equal(50000, config.MaxEvents())
	require.Equal(500, config.NPrint)
	require.True(config.Compression.UseBlosc)
	require.Equal(0.92, config.DriftV)
	require.Equal(2.0, config.S1EMin)
	require.Equal(40.0, config.S1EMax)
	require.Equal(3, config.S2NMax)
	require.Equal(5, config.S2NSipmMin)
	require.Equal(1.5, config.S2EThr)
	require.True(config.NoDB)
}

func TestLoadConfigurationRejectsInvertedBounds(t *testing.T) {
	require := require.New(t)

	path := writeConfigFile(t, `{
		"files_in": "/data/pmaps_*.h5",
		"file_out": "/data/kdst.h5",
		"run_all": true,
		"s1_emin": 50, "s1_emax": 10
	}`)

	_, err := LoadConfiguration(path)
	require.Error(err)
	require.Contains(err.Error(), "s1 energy")
}

func TestLoadConfigurationRejectsUnknownCompression(t *testing.T) {
	require := require.New(t)

	path := writeConfigFile(t, `{
		"files_in": "/data/pmaps_*.h5",
		"file_out": "/data/kdst.h5",
		"run_all": true,
		"compression": "GZIP"
	}`)

	_, err := LoadConfiguration(path)
	require.Error(err)
	require.Contains(err.Error(), "invalid compression")
}

func TestLoadConfigurationRequiresOutput(t *testing.T) {
	require := require.New(t)

	path := writeConfigFile(t, `{
		"files_in": "/data/pmaps_*.h5",
		"run_all": true
	}`)

	_, err := LoadConfiguration(path)
	require.Error(err)
	require.Contains(err.Error(), "file_out")
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	require := require.New(t)

	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(err)
}
