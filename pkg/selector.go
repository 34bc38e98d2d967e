package dorothea

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// SelectPeaks applies one class' criteria to the peaks of one event. The
// first return reports the event-level multiplicity check on the raw peak
// count; when it fails no peak is evaluated. The ids of the individually
// passing peaks come back in ascending order.
func SelectPeaks(peaks PeakMap, criteria PeakCriteria) (bool, []int) {
	if !inRangeInt(len(peaks), criteria.NMin, criteria.NMax) {
		return false, nil
	}
	ids := maps.Keys(peaks)
	sort.Ints(ids)
	passing := make([]int, 0, len(ids))
	for _, id := range ids {
		if validPeak(peaks[id], criteria) {
			passing = append(passing, id)
		}
	}
	return true, passing
}

// SelectS2 applies the S2 criteria: the common peak bounds plus the SiPM
// multiplicity taken from the peak's charge map. A peak with no charge map
// has zero active SiPMs.
func SelectS2(peaks PeakMap, sis SiMap, criteria PeakCriteria) (bool, []int) {
	ok, ids := SelectPeaks(peaks, criteria)
	if !ok {
		return false, nil
	}
	passing := make([]int, 0, len(ids))
	for _, id := range ids {
		if inRangeInt(sis[id].ActiveSipms(), criteria.NSipmMin, criteria.NSipmMax) {
			passing = append(passing, id)
		}
	}
	return true, passing
}

func validPeak(peak Peak, criteria PeakCriteria) bool {
	return inRange(peak.EnergyAboveThr(criteria.EThr), criteria.EMin, criteria.EMax) &&
		inRange(peak.WidthAboveThr(criteria.EThr), criteria.LMin, criteria.LMax) &&
		inRange(peak.Height(), criteria.HMin, criteria.HMax)
}

func inRange(x, min, max float64) bool {
	return min <= x && x <= max
}

func inRangeInt(x, min, max int) bool {
	return min <= x && x <= max
}

// EventSelector holds everything the per-event decision needs: the bounds
// for both peak classes, the S2 output cap, the drift velocity and the
// SiPM position table. All fields are fixed at startup and read-only
// afterwards.
type EventSelector struct {
	S1        PeakCriteria
	S2        PeakCriteria
	S2NMax    int
	DriftV    float64
	Positions map[int]XY
}

// NewEventSelector builds a selector from the run configuration. positions
// may be nil when running without the detector database, the reconstructed
// coordinates are then NaN.
func NewEventSelector(config Configuration, positions map[int]XY) *EventSelector {
	return &EventSelector{
		S1:        S1CriteriaFromConfig(config),
		S2:        S2CriteriaFromConfig(config),
		S2NMax:    config.S2NMax,
		DriftV:    config.DriftV,
		Positions: positions,
	}
}

// SelectEvent classifies one event. A rejected event returns (nil, nil).
// An error is returned only for malformed input, which aborts the run.
func (s *EventSelector) SelectEvent(evtNumber int32, timestamp uint64, s1s PeakMap, s2s PeakMap, sis SiMap) (*KrEvent, error) {
	okS1, s1Ids := SelectPeaks(s1s, s.S1)
	okS2, s2Ids := SelectS2(s2s, sis, s.S2)
	if !okS1 || !okS2 {
		return nil, nil
	}
	return s.reduce(evtNumber, timestamp, s1Ids, s1s, s2Ids, s2s, sis)
}

// reduce turns the surviving ids into the final KDST record. The single-S1
// requirement is asserted on the survivors even though the multiplicity
// bounds already pin the raw count, a failing S1 peak still disqualifies
// the event.
func (s *EventSelector) reduce(evtNumber int32, timestamp uint64, s1Ids []int, s1s PeakMap, s2Ids []int, s2s PeakMap, sis SiMap) (*KrEvent, error) {
	if len(s1Ids) != 1 || len(s2Ids) == 0 {
		return nil, nil
	}
	if len(s2Ids) > s.S2NMax {
		// ids are ascending, the cap keeps the lowest peak numbers
		s2Ids = s2Ids[:s.S2NMax]
	}

	s1 := s1s[s1Ids[0]]
	s1t := s1.TimeAtMax()

	evt := &KrEvent{
		Event:     evtNumber,
		Timestamp: timestamp,
		Time:      float64(timestamp) * 1e-3,
		S1Peak:    s1Ids[0],
		S1e:       s1.Energy(),
		S1w:       s1.Width(),
		S1h:       s1.Height(),
		S1t:       s1t,
		NS2:       len(s2Ids),
	}
	for _, id := range s2Ids {
		peak := s2s[id]
		si := sis[id]

		pos, err := barycenter(si, s.Positions)
		if err != nil {
			return nil, fmt.Errorf("event %d, S2 peak %d: %w", evtNumber, id, err)
		}
		dt := peak.StartTime() - s1t

		evt.S2Peaks = append(evt.S2Peaks, id)
		evt.S2e = append(evt.S2e, peak.Energy())
		evt.S2w = append(evt.S2w, peak.Width())
		evt.S2h = append(evt.S2h, peak.Height())
		evt.S2q = append(evt.S2q, si.TotalCharge())
		evt.S2t = append(evt.S2t, peak.StartTime())
		evt.Nsipm = append(evt.Nsipm, si.ActiveSipms())
		evt.DT = append(evt.DT, dt)
		evt.Z = append(evt.Z, dt*s.DriftV)
		evt.X = append(evt.X, pos.X)
		evt.Y = append(evt.Y, pos.Y)
		evt.Xrms = append(evt.Xrms, pos.Xrms)
		evt.Yrms = append(evt.Yrms, pos.Yrms)
		evt.R = append(evt.R, pos.R)
		evt.Phi = append(evt.Phi, pos.Phi)
	}
	return evt, nil
}
