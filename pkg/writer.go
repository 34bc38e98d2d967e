package dorothea

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// KDSTRowHDF5 is one /DST/Events row: one kept S2 peak of one accepted
// event. Field order and names match the KDST column layout, the peak
// column is the 0-based index of the kept peak within its event.
type KDSTRowHDF5 struct {
	event int32
	time  float64
	peak  uint8
	nS2   uint8
	S1w   float64
	S1h   float64
	S1e   float64
	S1t   float64
	S2w   float64
	S2h   float64
	S2e   float64
	S2q   float64
	S2t   float64
	Nsipm int16
	DT    float64
	Z     float64
	X     float64
	Y     float64
	R     float64
	Phi   float64
	Xrms  float64
	Yrms  float64
}

// Writer persists accepted events to the KDST file: the /DST/Events rows
// plus the accepted-event index under /Run. Rows are appended in
// acceptance order.
type Writer struct {
	File         *hdf5.File
	Filename     string
	DSTGroup     *hdf5.Group
	RunGroup     *hdf5.Group
	KrTable      *hdf5.Dataset
	EventTable   *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
	RowCounter   int
	EvtCounter   int
}

func NewWriter(filename string, runNumber int) *Writer {
	if configuration.Compression.UseBlosc {
		bloscVersion, bloscDate, err := hdf5.RegisterBlosc()
		if err != nil {
			logger.Error(err.Error())
		}
		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Blosc filter registered (version %s, %s)", bloscVersion, bloscDate)
			logger.Info(message, "writer")
		}
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating KDST file: %s", filename)
		logger.Info(message, "writer")
	}

	writer := &Writer{}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.DSTGroup = createGroup(writer.File, "DST")
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.KrTable = createTable(writer.DSTGroup, "Events", KDSTRowHDF5{})
	writer.EventTable = createTable(writer.RunGroup, "events", EventDataHDF5{})
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writeEntryToTable(writer.RunInfoTable, RunInfoHDF5{run_number: int32(runNumber)}, 0)
	return writer
}

// Write appends one accepted event: its KDST rows plus its entry in the
// accepted-event index.
func (w *Writer) Write(evt *KrEvent) error {
	rows := buildKDSTRows(evt)
	writeArrayToTable(w.KrTable, &rows, w.RowCounter)
	writeEntryToTable(w.EventTable, EventDataHDF5{
		evt_number: evt.Event,
		timestamp:  evt.Timestamp,
	}, w.EvtCounter)
	w.RowCounter += len(rows)
	w.EvtCounter++
	return nil
}

// buildKDSTRows flattens one accepted event into per-S2-peak rows.
func buildKDSTRows(evt *KrEvent) []KDSTRowHDF5 {
	rows := make([]KDSTRowHDF5, evt.NS2)
	for i := range rows {
		rows[i] = KDSTRowHDF5{
			event: evt.Event,
			time:  evt.Time,
			peak:  uint8(i),
			nS2:   uint8(evt.NS2),
			S1w:   evt.S1w,
			S1h:   evt.S1h,
			S1e:   evt.S1e,
			S1t:   evt.S1t,
			S2w:   evt.S2w[i],
			S2h:   evt.S2h[i],
			S2e:   evt.S2e[i],
			S2q:   evt.S2q[i],
			S2t:   evt.S2t[i],
			Nsipm: int16(evt.Nsipm[i]),
			DT:    evt.DT[i],
			Z:     evt.Z[i],
			X:     evt.X[i],
			Y:     evt.Y[i],
			R:     evt.R[i],
			Phi:   evt.Phi[i],
			Xrms:  evt.Xrms[i],
			Yrms:  evt.Yrms[i],
		}
	}
	return rows
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Closing KDST file: %s", w.Filename)
		logger.Info(message, "writer")
	}
	var errs []error

	if err := w.KrTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing KDST table: %w", err))
	}
	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.DSTGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing DST group: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
