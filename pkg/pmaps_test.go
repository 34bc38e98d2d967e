package dorothea

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadErrorOnlySkipsMissingTables(t *testing.T) {
	require := require.New(t)

	// absent dataset: the file carries no PMap data, skippable
	missing := &ErrMissingTable{TableName: "PMAPS/S1", Err: errors.New("object not found")}
	err := loadError("pmaps_0.h5", "no S1 table", missing)
	require.True(IsNoPMapData(err))
	require.Contains(err.Error(), "no S1 table")

	// present but unreadable dataset: fatal, not rewrapped
	corrupt := fmt.Errorf("error reading table %q: %w", "PMAPS/S1", errors.New("datatype conversion failed"))
	err = loadError("pmaps_0.h5", "no S1 table", corrupt)
	require.False(IsNoPMapData(err))
	require.Equal(corrupt, err)

	extent := fmt.Errorf("error reading extent of table %q: %w", "PMAPS/S2", errors.New("invalid dataspace"))
	require.False(IsNoPMapData(loadError("pmaps_0.h5", "no S2 table", extent)))
}

func TestGroupS12Rows(t *testing.T) {
	require := require.New(t)

	rows := []s12RowHDF5{
		{event: 1, peak: 0, time: 100, ene: 1},
		{event: 1, peak: 0, time: 101, ene: 2},
		{event: 1, peak: 1, time: 500, ene: 3},
		{event: 2, peak: 0, time: 200, ene: 4},
	}

	peaks := groupS12Rows(rows)
	require.Len(peaks, 2)
	require.Len(peaks[1], 2)
	require.Len(peaks[2], 1)

	require.Equal([]float64{100, 101}, peaks[1][0].Times)
	require.Equal([]float64{1, 2}, peaks[1][0].Energies)
	require.Equal([]float64{500}, peaks[1][1].Times)
	require.Equal([]float64{200}, peaks[2][0].Times)

	require.Empty(groupS12Rows(nil))
}

func TestGroupSiRows(t *testing.T) {
	require := require.New(t)

	rows := []siRowHDF5{
		{event: 1, peak: 0, nsipm: 1010, ene: 1},
		{event: 1, peak: 0, nsipm: 1010, ene: 2},
		{event: 1, peak: 0, nsipm: 1011, ene: 3},
		{event: 1, peak: 1, nsipm: 1010, ene: 4},
		{event: 2, peak: 0, nsipm: 1012, ene: 5},
	}

	sis := groupSiRows(rows)
	require.Len(sis, 2)
	require.Len(sis[1], 2)

	require.Equal([]float64{1, 2}, sis[1][0][1010])
	require.Equal([]float64{3}, sis[1][0][1011])
	require.Equal([]float64{4}, sis[1][1][1010])
	require.Equal([]float64{5}, sis[2][0][1012])

	require.Empty(groupSiRows(nil))
}

func TestGroupedRowsFeedTheSelection(t *testing.T) {
	require := require.New(t)

	s1Rows := []s12RowHDF5{
		{event: 3, peak: 0, time: 100, ene: 10},
	}
	s2Rows := []s12RowHDF5{
		{event: 3, peak: 0, time: 500, ene: 20},
		{event: 3, peak: 0, time: 501, ene: 30},
	}
	siRows := []siRowHDF5{
		{event: 3, peak: 0, nsipm: 1010, ene: 5},
		{event: 3, peak: 0, nsipm: 1011, ene: 10},
	}

	s1s := groupS12Rows(s1Rows)
	s2s := groupS12Rows(s2Rows)
	sis := groupSiRows(siRows)

	evt, err := testSelector().SelectEvent(3, 3000, s1s[3], s2s[3], sis[3])
	require.NoError(err)
	require.NotNil(evt)
	require.Equal([]float64{50}, evt.S2e)
	require.Equal([]float64{15}, evt.S2q)
	require.Equal([]int{2}, evt.Nsipm)
	require.Equal([]float64{400}, evt.DT)
}
