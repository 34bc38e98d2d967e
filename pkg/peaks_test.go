package dorothea

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeakQuantities(t *testing.T) {
	require := require.New(t)

	peak := Peak{
		Times:    []float64{100, 125, 150, 175, 200},
		Energies: []float64{1, 4, 10, 3, 2},
	}

	require.Equal(20.0, peak.Energy())
	require.Equal(10.0, peak.Height())
	require.Equal(100.0, peak.Width())
	require.Equal(150.0, peak.TimeAtMax())
	require.Equal(100.0, peak.StartTime())
}

func TestPeakQuantitiesAboveThreshold(t *testing.T) {
	require := require.New(t)

	peak := Peak{
		Times:    []float64{100, 125, 150, 175, 200},
		Energies: []float64{1, 4, 10, 3, 2},
	}

	// samples strictly above 2 are 4, 10 and 3
	require.Equal(17.0, peak.EnergyAboveThr(2))
	require.Equal(50.0, peak.WidthAboveThr(2))

	// a single passing sample spans no time
	require.Equal(10.0, peak.EnergyAboveThr(9))
	require.Equal(0.0, peak.WidthAboveThr(9))

	// threshold above every sample
	require.Equal(0.0, peak.EnergyAboveThr(100))
	require.Equal(0.0, peak.WidthAboveThr(100))
}

func TestEmptyPeak(t *testing.T) {
	require := require.New(t)

	var peak Peak
	require.Equal(0.0, peak.Energy())
	require.Equal(0.0, peak.Height())
	require.Equal(0.0, peak.Width())
	require.Equal(0.0, peak.TimeAtMax())
	require.Equal(0.0, peak.StartTime())
	require.Equal(0.0, peak.EnergyAboveThr(0))
	require.Equal(0.0, peak.WidthAboveThr(0))
}

func TestHeightOfNegativeSamples(t *testing.T) {
	require := require.New(t)

	// baseline-subtracted samples can dip below zero
	peak := Peak{Times: []float64{100, 101}, Energies: []float64{-5, -2}}
	require.Equal(-2.0, peak.Height())
	require.Equal(101.0, peak.TimeAtMax())
}

func TestSingleSamplePeakHasNoWidth(t *testing.T) {
	require := require.New(t)

	peak := Peak{Times: []float64{100}, Energies: []float64{5}}
	require.Equal(0.0, peak.Width())
	require.Equal(5.0, peak.Energy())
	require.Equal(100.0, peak.TimeAtMax())
}

func TestSiPeakCharges(t *testing.T) {
	require := require.New(t)

	si := SiPeak{
		1010: {1.5, 2.5},
		1011: {0, 0},
		1012: {3.0},
	}

	// 1011 integrates to zero and does not count as active
	require.Equal(2, si.ActiveSipms())
	require.Equal(7.0, si.TotalCharge())

	var empty SiPeak
	require.Equal(0, empty.ActiveSipms())
	require.Equal(0.0, empty.TotalCharge())
}
