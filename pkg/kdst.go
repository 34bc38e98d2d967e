package dorothea

// KrEvent is one accepted event: the S1 drift reference, the kept S2 peaks
// and the per-peak derived quantities. The slices run parallel over the
// kept S2 peaks, lowest peak number first. Summary energies, widths and
// heights are plain quantities, taken without the integration threshold.
type KrEvent struct {
	Event     int32
	Timestamp uint64
	Time      float64

	S1Peak int
	S1e    float64
	S1w    float64
	S1h    float64
	S1t    float64

	NS2     int
	S2Peaks []int
	S2e     []float64
	S2w     []float64
	S2h     []float64
	S2q     []float64
	S2t     []float64
	Nsipm   []int
	DT      []float64
	Z       []float64
	X       []float64
	Y       []float64
	Xrms    []float64
	Yrms    []float64
	R       []float64
	Phi     []float64
}
