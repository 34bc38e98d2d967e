package main

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	dorothea "github.com/next-exp/dorothea_go/pkg"
	"github.com/stretchr/testify/require"
)

// slowLoader flags any two Load calls running at the same time.
type slowLoader struct {
	inFlight   atomic.Int32
	overlapped atomic.Bool
	pmaps      *dorothea.PMapData
}

func (l *slowLoader) Load(filename string) (*dorothea.PMapData, error) {
	if l.inFlight.Add(1) > 1 {
		l.overlapped.Store(true)
	}
	time.Sleep(time.Millisecond)
	l.inFlight.Add(-1)
	return l.pmaps, nil
}

func TestQuantityStats(t *testing.T) {
	require := require.New(t)

	var s QuantityStats
	require.Equal(0.0, s.Mean())

	s.Add(5)
	s.Add(1)
	s.Add(9)
	require.Equal(3, s.Count)
	require.Equal(1.0, s.Min)
	require.Equal(9.0, s.Max)
	require.Equal(5.0, s.Mean())
}

func TestQuantityStatsMerge(t *testing.T) {
	require := require.New(t)

	var a, b, empty QuantityStats
	a.Add(2)
	a.Add(4)
	b.Add(10)

	a.Merge(empty)
	require.Equal(2, a.Count)

	a.Merge(b)
	require.Equal(3, a.Count)
	require.Equal(2.0, a.Min)
	require.Equal(10.0, a.Max)
	require.InDelta(16.0/3.0, a.Mean(), 1e-12)

	empty.Merge(b)
	require.Equal(1, empty.Count)
	require.Equal(10.0, empty.Min)
}

func TestCollectFileStats(t *testing.T) {
	require := require.New(t)

	configuration = dorothea.Configuration{}

	pmaps := &dorothea.PMapData{
		Events: []dorothea.EventInfo{{Number: 1}, {Number: 2}},
		S1s: map[int32]dorothea.PeakMap{
			1: {0: dorothea.Peak{Times: []float64{100, 101}, Energies: []float64{5, 5}}},
		},
		S2s: map[int32]dorothea.PeakMap{
			1: {0: dorothea.Peak{Times: []float64{500, 510}, Energies: []float64{20, 30}}},
			2: {0: dorothea.Peak{Times: []float64{600, 620}, Energies: []float64{40, 40}}},
		},
		Sis: map[int32]dorothea.SiMap{
			1: {0: {1000: {5}, 1001: {7}}},
			2: {0: {1000: {0}}},
		},
	}

	stats := collectFileStats(pmaps)
	require.Equal(2, stats.Events)

	// event 2 has no S1 peaks
	require.Equal(2, stats.S1.Peaks.Count)
	require.Equal(0.0, stats.S1.Peaks.Min)
	require.Equal(1.0, stats.S1.Peaks.Max)
	require.Equal(1, stats.S1.Energy.Count)
	require.Equal(10.0, stats.S1.Energy.Max)

	require.Equal(2, stats.S2.Energy.Count)
	require.Equal(50.0, stats.S2.Energy.Min)
	require.Equal(80.0, stats.S2.Energy.Max)
	require.Equal(10.0, stats.S2.Width.Min)
	require.Equal(20.0, stats.S2.Width.Max)
	require.Equal(0.0, stats.S2.Sipms.Min)
	require.Equal(2.0, stats.S2.Sipms.Max)
}

func TestWorkersSerializeFileAccess(t *testing.T) {
	require := require.New(t)

	configuration = dorothea.Configuration{}

	fake := &slowLoader{pmaps: &dorothea.PMapData{
		Events: []dorothea.EventInfo{{Number: 1}},
		S1s:    map[int32]dorothea.PeakMap{},
		S2s: map[int32]dorothea.PeakMap{
			1: {0: dorothea.Peak{Times: []float64{500, 510}, Energies: []float64{20, 30}}},
		},
		Sis: map[int32]dorothea.SiMap{1: {0: {1000: {5}}}},
	}}
	loader := &lockedLoader{loader: fake}

	const nFiles = 12
	jobs := make(chan string, nFiles)
	results := make(chan WorkerResult, nFiles)
	for w := 1; w <= 4; w++ {
		go worker(w, loader, jobs, results)
	}
	for i := 0; i < nFiles; i++ {
		jobs <- fmt.Sprintf("pmaps_%d.h5", i)
	}
	close(jobs)

	total := FileStats{}
	for i := 0; i < nFiles; i++ {
		result := <-results
		require.NoError(result.Err)
		require.False(result.Empty)
		total.merge(result.Stats)
	}
	require.False(fake.overlapped.Load())
	require.Equal(nFiles, total.Events)
	require.Equal(nFiles, total.S2.Energy.Count)
}

func TestFileStatsMerge(t *testing.T) {
	require := require.New(t)

	var a, b FileStats
	a.Events = 3
	a.S2.Energy.Add(50)
	b.Events = 2
	b.S2.Energy.Add(70)
	b.S2.Sipms.Add(4)

	a.merge(b)
	require.Equal(5, a.Events)
	require.Equal(2, a.S2.Energy.Count)
	require.Equal(70.0, a.S2.Energy.Max)
	require.Equal(1, a.S2.Sipms.Count)
}
