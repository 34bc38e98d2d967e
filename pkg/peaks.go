package dorothea

// Peak holds the calibrated samples of one reconstructed S1 or S2 peak.
// Times and Energies run parallel, ordered as written by the upstream
// reconstruction. Peaks are never mutated here, the selection only reads
// derived quantities.
type Peak struct {
	Times    []float64
	Energies []float64
}

// PeakMap collects the peaks of one event for one signal class, keyed by
// peak number.
type PeakMap map[int]Peak

// SiPeak is the per-SiPM charge breakdown of one S2 peak: SiPM id to the
// charge samples over the peak time slices.
type SiPeak map[int][]float64

// SiMap collects the SiPM charge maps of one event, keyed by S2 peak number.
type SiMap map[int]SiPeak

// EventInfo is one entry of a file's event index.
type EventInfo struct {
	Number    int32
	Timestamp uint64
}

// PMapData is the content of one PMap file: the ordered event index plus
// the per-event peak maps. Events with no peaks of a class are simply
// absent from that map.
type PMapData struct {
	RunNumber int32
	Events    []EventInfo
	S1s       map[int32]PeakMap
	S2s       map[int32]PeakMap
	Sis       map[int32]SiMap
}

// Energy returns the total peak energy.
func (p Peak) Energy() float64 {
	var e float64
	for _, v := range p.Energies {
		e += v
	}
	return e
}

// EnergyAboveThr integrates the samples strictly above thr.
func (p Peak) EnergyAboveThr(thr float64) float64 {
	var e float64
	for _, v := range p.Energies {
		if v > thr {
			e += v
		}
	}
	return e
}

// Height returns the maximum sample amplitude, zero for an empty peak.
func (p Peak) Height() float64 {
	if len(p.Energies) == 0 {
		return 0
	}
	h := p.Energies[0]
	for _, v := range p.Energies[1:] {
		if v > h {
			h = v
		}
	}
	return h
}

// Width returns the time span covered by the peak samples.
func (p Peak) Width() float64 {
	if len(p.Times) < 2 {
		return 0
	}
	return p.Times[len(p.Times)-1] - p.Times[0]
}

// WidthAboveThr returns the time span of the samples strictly above thr.
// Fewer than two passing samples span no time.
func (p Peak) WidthAboveThr(thr float64) float64 {
	first, last := -1, -1
	for i, v := range p.Energies {
		if v > thr {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || first == last {
		return 0
	}
	return p.Times[last] - p.Times[first]
}

// TimeAtMax returns the time of the maximum sample, zero for an empty peak.
func (p Peak) TimeAtMax() float64 {
	if len(p.Energies) == 0 {
		return 0
	}
	imax := 0
	for i, v := range p.Energies {
		if v > p.Energies[imax] {
			imax = i
		}
	}
	return p.Times[imax]
}

// StartTime returns the first sample time, zero for an empty peak.
func (p Peak) StartTime() float64 {
	if len(p.Times) == 0 {
		return 0
	}
	return p.Times[0]
}

// ActiveSipms returns the number of SiPMs with positive integrated charge.
func (s SiPeak) ActiveSipms() int {
	n := 0
	for _, samples := range s {
		if sumSamples(samples) > 0 {
			n++
		}
	}
	return n
}

// TotalCharge returns the charge integrated over all SiPMs of the peak.
func (s SiPeak) TotalCharge() float64 {
	var q float64
	for _, samples := range s {
		q += sumSamples(samples)
	}
	return q
}

func sumSamples(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum
}
