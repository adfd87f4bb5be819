package output

import (
	"sync"
	"time"

	"github.com/valerio/go-keyer/keyer/timing"
)

// Edge is a recorded level change, timed from when recording started.
type Edge struct {
	At   time.Duration
	High bool
}

// Interval is a span during which a recorded line held one level.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

func (i Interval) Duration() time.Duration { return i.End - i.Start }

// Recorder is a Line and Tone that remembers every level change. It stands
// in for hardware in headless runs and tests.
type Recorder struct {
	mu      sync.Mutex
	clock   timing.Clock
	start   time.Time
	initial bool
	level   bool
	duty    uint8
	edges   []Edge
}

// NewRecorder starts recording at the clock's current time with the line at
// the given level.
func NewRecorder(clock timing.Clock, initial bool) *Recorder {
	return &Recorder{
		clock:   clock,
		start:   clock.Now(),
		initial: initial,
		level:   initial,
	}
}

// Set records a level change. Repeated writes of the same level are not edges.
func (r *Recorder) Set(high bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(high)
}

func (r *Recorder) set(high bool) {
	if high == r.level {
		return
	}
	r.level = high
	r.edges = append(r.edges, Edge{At: r.clock.Now().Sub(r.start), High: high})
}

// SetDutyPercent records the duty and treats any non-zero duty as high.
func (r *Recorder) SetDutyPercent(percent uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duty = percent
	r.set(percent > 0)
}

func (r *Recorder) Off() {
	r.SetDutyPercent(0)
}

// Level returns the current line level.
func (r *Recorder) Level() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// Duty returns the last duty cycle set through the Tone interface.
func (r *Recorder) Duty() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duty
}

// Edges returns a copy of the recorded level changes.
func (r *Recorder) Edges() []Edge {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Edge(nil), r.edges...)
}

// Intervals returns the completed spans during which the line was at level.
// A span still open at the time of the call is left out.
func (r *Recorder) Intervals(level bool) []Interval {
	r.mu.Lock()
	defer r.mu.Unlock()

	var intervals []Interval
	open, start := r.initial == level, time.Duration(0)
	for _, e := range r.edges {
		switch {
		case e.High == level:
			open, start = true, e.At
		case open:
			intervals = append(intervals, Interval{Start: start, End: e.At})
			open = false
		}
	}
	return intervals
}

// Reset forgets all edges and restarts the recording time at now.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges = nil
	r.start = r.clock.Now()
	r.initial = r.level
}
