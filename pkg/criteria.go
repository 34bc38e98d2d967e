package dorothea

import "math"

// PeakCriteria bundles the acceptance bounds for one peak class. All
// bounds are inclusive. Multiplicity counts raw peaks, before any per-peak
// cut; energy and width are integrated above EThr, height is taken on the
// raw samples.
type PeakCriteria struct {
	NMin, NMax int
	EMin, EMax float64
	LMin, LMax float64
	HMin, HMax float64
	EThr       float64

	// SiPM multiplicity, only checked for S2 peaks.
	NSipmMin, NSipmMax int
}

// S1CriteriaFromConfig builds the S1 bounds. The S1 multiplicity is pinned
// to exactly one peak, the drift reference.
func S1CriteriaFromConfig(config Configuration) PeakCriteria {
	return PeakCriteria{
		NMin: 1, NMax: 1,
		EMin: config.S1EMin, EMax: config.S1EMax,
		LMin: config.S1LMin, LMax: config.S1LMax,
		HMin: config.S1HMin, HMax: config.S1HMax,
		EThr: config.S1EThr,
	}
}

// S2CriteriaFromConfig builds the S2 bounds. The raw S2 multiplicity has no
// upper bound here, the output cap is applied by the reducer.
func S2CriteriaFromConfig(config Configuration) PeakCriteria {
	return PeakCriteria{
		NMin: 1, NMax: math.MaxInt32,
		EMin: config.S2EMin, EMax: config.S2EMax,
		LMin: config.S2LMin, LMax: config.S2LMax,
		HMin: config.S2HMin, HMax: config.S2HMax,
		EThr:     config.S2EThr,
		NSipmMin: config.S2NSipmMin, NSipmMax: config.S2NSipmMax,
	}
}
