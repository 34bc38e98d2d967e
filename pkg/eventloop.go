package dorothea

import (
	"fmt"
)

// KrSink persists accepted events in acceptance order.
type KrSink interface {
	Write(evt *KrEvent) error
}

// RunState tracks the event loop through one run.
type RunState int

const (
	StateRunning RunState = iota
	StateMaxReached
	StateDone
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateMaxReached:
		return "MAX_REACHED"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// RunSummary carries the counters of one run.
type RunSummary struct {
	EventsIn  int
	EventsOut int
}

// Ratio returns accepted over seen. The second return is false when no
// event was seen, the ratio is undefined then.
func (s RunSummary) Ratio() (float64, bool) {
	if s.EventsIn == 0 {
		return 0, false
	}
	return float64(s.EventsOut) / float64(s.EventsIn), true
}

// EventLoop walks the input files in order and drives the selection one
// event at a time. It owns the run counters and the early-termination
// state. NMax caps the events read, not the events kept; a negative NMax
// means unbounded.
type EventLoop struct {
	Selector *EventSelector
	Loader   PMapLoader
	Sink     KrSink
	NMax     int
	NPrint   int

	state   RunState
	nevtIn  int
	nevtOut int
}

func NewEventLoop(selector *EventSelector, loader PMapLoader, sink KrSink, nmax int, nprint int) *EventLoop {
	return &EventLoop{
		Selector: selector,
		Loader:   loader,
		Sink:     sink,
		NMax:     nmax,
		NPrint:   nprint,
	}
}

// State reports where the loop stopped.
func (l *EventLoop) State() RunState {
	return l.state
}

// Run processes the files sequentially, resetting the counters first.
// Files without PMap data are skipped, any other failure aborts the run.
// Events already written stay written, the summary is valid either way.
func (l *EventLoop) Run(files []string) (RunSummary, error) {
	l.nevtIn, l.nevtOut = 0, 0
	l.state = StateRunning

	for _, filename := range files {
		if l.state == StateMaxReached {
			break
		}
		message := fmt.Sprintf("Opening %s", filename)
		logger.Info(message, "eventloop")

		pmaps, err := l.Loader.Load(filename)
		if err != nil {
			if IsNoPMapData(err) {
				logger.Info("Empty file. Skipping.", "eventloop")
				continue
			}
			return l.summary(), fmt.Errorf("error loading PMaps from %s: %w", filename, err)
		}
		if err := l.processFile(pmaps); err != nil {
			return l.summary(), err
		}
	}
	if l.state == StateRunning {
		l.state = StateDone
	}
	return l.summary(), nil
}

// processFile runs the selection over one loaded file in event-index
// order. An event missing from a peak table simply has no peaks of that
// class.
func (l *EventLoop) processFile(pmaps *PMapData) error {
	for _, entry := range pmaps.Events {
		l.nevtIn++

		evt, err := l.Selector.SelectEvent(entry.Number, entry.Timestamp,
			pmaps.S1s[entry.Number], pmaps.S2s[entry.Number], pmaps.Sis[entry.Number])
		if err != nil {
			return err
		}
		if evt != nil {
			if err := l.Sink.Write(evt); err != nil {
				return fmt.Errorf("error writing event %d: %w", entry.Number, err)
			}
			l.nevtOut++
		}

		if l.NPrint > 0 && l.nevtIn%l.NPrint == 0 {
			message := fmt.Sprintf("%d events analyzed", l.nevtIn)
			logger.Info(message, "eventloop")
		}

		if l.maxEventsReached() {
			l.state = StateMaxReached
			logger.Info("Max events reached", "eventloop")
			break
		}
	}
	return nil
}

func (l *EventLoop) maxEventsReached() bool {
	return l.NMax >= 0 && l.nevtIn >= l.NMax
}

func (l *EventLoop) summary() RunSummary {
	return RunSummary{EventsIn: l.nevtIn, EventsOut: l.nevtOut}
}
