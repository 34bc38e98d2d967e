package main

import (
	"fmt"
	"sync"

	dorothea "github.com/next-exp/dorothea_go/pkg"
)

type WorkerResult struct {
	Filename string
	Stats    FileStats
	Empty    bool
	Err      error
}

// lockedLoader serializes Load calls. libhdf5 is not thread-safe in the
// default build, so file reads take one lock and only the in-memory
// accumulation runs concurrently.
type lockedLoader struct {
	mu     sync.Mutex
	loader dorothea.PMapLoader
}

func (l *lockedLoader) Load(filename string) (*dorothea.PMapData, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loader.Load(filename)
}

func worker(id int, loader dorothea.PMapLoader, jobs <-chan string, results chan<- WorkerResult) {
	for filename := range jobs {
		results <- surveyFile(id, loader, filename)
	}
}

// surveyFile loads one PMap file and accumulates its quantity ranges. A
// panic in the HDF5 layer is contained to the file.
func surveyFile(id int, loader dorothea.PMapLoader, filename string) (result WorkerResult) {
	result.Filename = filename
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("worker %d recovered from panic on %s: %v", id, filename, r)
		}
	}()

	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Worker %d surveying %s", id, filename)
		logger.Info(message, "worker")
	}

	pmaps, err := loader.Load(filename)
	if err != nil {
		if dorothea.IsNoPMapData(err) {
			result.Empty = true
			return result
		}
		result.Err = err
		return result
	}
	result.Stats = collectFileStats(pmaps)
	return result
}

// QuantityStats accumulates the range and mean of one peak quantity.
type QuantityStats struct {
	Count int
	Min   float64
	Max   float64
	Sum   float64
}

func (s *QuantityStats) Add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.Sum += v
}

func (s *QuantityStats) Merge(other QuantityStats) {
	if other.Count == 0 {
		return
	}
	if s.Count == 0 || other.Min < s.Min {
		s.Min = other.Min
	}
	if s.Count == 0 || other.Max > s.Max {
		s.Max = other.Max
	}
	s.Count += other.Count
	s.Sum += other.Sum
}

func (s QuantityStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// ClassStats are the quantity ranges of one peak class. Energies and
// widths are integrated above the class threshold, the same quantities the
// selection cuts on.
type ClassStats struct {
	Peaks  QuantityStats
	Energy QuantityStats
	Width  QuantityStats
	Height QuantityStats
	Sipms  QuantityStats
}

func (c *ClassStats) addPeak(peak dorothea.Peak, thr float64) {
	c.Energy.Add(peak.EnergyAboveThr(thr))
	c.Width.Add(peak.WidthAboveThr(thr))
	c.Height.Add(peak.Height())
}

func (c *ClassStats) merge(other ClassStats) {
	c.Peaks.Merge(other.Peaks)
	c.Energy.Merge(other.Energy)
	c.Width.Merge(other.Width)
	c.Height.Merge(other.Height)
	c.Sipms.Merge(other.Sipms)
}

type FileStats struct {
	Events int
	S1     ClassStats
	S2     ClassStats
}

func (f *FileStats) merge(other FileStats) {
	f.Events += other.Events
	f.S1.merge(other.S1)
	f.S2.merge(other.S2)
}

func collectFileStats(pmaps *dorothea.PMapData) FileStats {
	stats := FileStats{Events: len(pmaps.Events)}
	for _, entry := range pmaps.Events {
		s1s := pmaps.S1s[entry.Number]
		s2s := pmaps.S2s[entry.Number]
		sis := pmaps.Sis[entry.Number]

		stats.S1.Peaks.Add(float64(len(s1s)))
		stats.S2.Peaks.Add(float64(len(s2s)))
		for _, peak := range s1s {
			stats.S1.addPeak(peak, configuration.S1EThr)
		}
		for id, peak := range s2s {
			stats.S2.addPeak(peak, configuration.S2EThr)
			stats.S2.Sipms.Add(float64(sis[id].ActiveSipms()))
		}
	}
	return stats
}
