package dorothea

import (
	"fmt"
	"math"
)

// XY is a sensor position on the tracking plane, in mm.
type XY struct {
	X float64
	Y float64
}

// Barycenter is the charge-weighted position summary of one S2 peak.
type Barycenter struct {
	X    float64
	Y    float64
	Xrms float64
	Yrms float64
	R    float64
	Phi  float64
}

// barycenter reconstructs the charge-weighted position of one S2 peak from
// its SiPM charge map. Without a position table, or with no positive
// charge, every field is NaN. A SiPM id missing from a loaded table means
// the file and the database disagree, which aborts the run.
func barycenter(si SiPeak, positions map[int]XY) (Barycenter, error) {
	nan := math.NaN()
	b := Barycenter{X: nan, Y: nan, Xrms: nan, Yrms: nan, R: nan, Phi: nan}
	if positions == nil {
		return b, nil
	}

	var q, qx, qy float64
	for id, samples := range si {
		pos, ok := positions[id]
		if !ok {
			return b, fmt.Errorf("SiPM %d not in the position table", id)
		}
		qi := sumSamples(samples)
		q += qi
		qx += qi * pos.X
		qy += qi * pos.Y
	}
	if q <= 0 {
		return b, nil
	}

	x := qx / q
	y := qy / q
	var vx, vy float64
	for id, samples := range si {
		pos := positions[id]
		qi := sumSamples(samples)
		vx += qi * (pos.X - x) * (pos.X - x)
		vy += qi * (pos.Y - y) * (pos.Y - y)
	}
	b.X = x
	b.Y = y
	b.Xrms = math.Sqrt(vx / q)
	b.Yrms = math.Sqrt(vy / q)
	b.R = math.Hypot(x, y)
	b.Phi = math.Atan2(y, x)
	return b, nil
}
