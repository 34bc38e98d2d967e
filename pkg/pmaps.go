package dorothea

import "errors"

// Compound layouts of the PMap tables, as written by the reconstruction.
type s12RowHDF5 struct {
	event int32
	peak  uint8
	time  float32
	ene   float32
}

type siRowHDF5 struct {
	event int32
	peak  uint8
	nsipm int16
	ene   float32
}

// PMapLoader loads one PMap file. Tests substitute in-memory fixtures.
type PMapLoader interface {
	Load(filename string) (*PMapData, error)
}

// PMapReader is the HDF5-backed PMapLoader. It expects the /PMAPS/S1, S2
// and S2Si tables plus the /Run event index.
type PMapReader struct{}

func (PMapReader) Load(filename string) (*PMapData, error) {
	file, err := openFileReadOnly(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	index, err := readTable[EventDataHDF5](file, "Run/events")
	if err != nil {
		return nil, loadError(filename, "no event index", err)
	}
	if len(index) == 0 {
		return nil, &ErrNoPMapData{Filename: filename, Reason: "empty event index"}
	}
	s1Rows, err := readTable[s12RowHDF5](file, "PMAPS/S1")
	if err != nil {
		return nil, loadError(filename, "no S1 table", err)
	}
	s2Rows, err := readTable[s12RowHDF5](file, "PMAPS/S2")
	if err != nil {
		return nil, loadError(filename, "no S2 table", err)
	}
	siRows, err := readTable[siRowHDF5](file, "PMAPS/S2Si")
	if err != nil {
		return nil, loadError(filename, "no S2Si table", err)
	}

	data := &PMapData{
		Events: make([]EventInfo, len(index)),
		S1s:    groupS12Rows(s1Rows),
		S2s:    groupS12Rows(s2Rows),
		Sis:    groupSiRows(siRows),
	}
	for i, entry := range index {
		data.Events[i] = EventInfo{Number: entry.evt_number, Timestamp: entry.timestamp}
	}
	if runInfo, err := readTable[RunInfoHDF5](file, "Run/runInfo"); err == nil && len(runInfo) > 0 {
		data.RunNumber = runInfo[0].run_number
	}
	return data, nil
}

// loadError keeps the skip condition narrow: only an absent table means
// the file carries no PMap data. A table that is present but cannot be
// read propagates as is and aborts the run.
func loadError(filename string, reason string, err error) error {
	var missing *ErrMissingTable
	if errors.As(err, &missing) {
		return &ErrNoPMapData{Filename: filename, Reason: reason}
	}
	return err
}

// groupS12Rows rebuilds the per-event peak maps from flat table rows,
// keeping the sample order of the file.
func groupS12Rows(rows []s12RowHDF5) map[int32]PeakMap {
	peaks := make(map[int32]PeakMap)
	for _, row := range rows {
		event := peaks[row.event]
		if event == nil {
			event = make(PeakMap)
			peaks[row.event] = event
		}
		peak := event[int(row.peak)]
		peak.Times = append(peak.Times, float64(row.time))
		peak.Energies = append(peak.Energies, float64(row.ene))
		event[int(row.peak)] = peak
	}
	return peaks
}

// groupSiRows rebuilds the per-event SiPM charge maps from flat table rows.
func groupSiRows(rows []siRowHDF5) map[int32]SiMap {
	sis := make(map[int32]SiMap)
	for _, row := range rows {
		event := sis[row.event]
		if event == nil {
			event = make(SiMap)
			sis[row.event] = event
		}
		peak := event[int(row.peak)]
		if peak == nil {
			peak = make(SiPeak)
			event[int(row.peak)] = peak
		}
		id := int(row.nsipm)
		peak[id] = append(peak[id], float64(row.ene))
	}
	return sis
}
