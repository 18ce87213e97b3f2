package trace

import (
	"fmt"
	"io"
	"sync"
)

// Dumper is a tracer that can replay what it kept, e.g. after a failed
// detection.
type Dumper interface {
	Dump(w io.Writer, format Format) error
}

// RingTracer holds the most recent detection events in memory. Older events
// are overwritten once the ring is full.
type RingTracer struct {
	mu      sync.RWMutex
	slots   []Event
	written uint64 // events accepted so far, including overwritten ones
	level   Level
}

// NewRingTracer keeps up to size events; size <= 0 means 4096.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	return &RingTracer{slots: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := *ev
	kept.Seq = NextSeq()
	t.slots[t.written%uint64(len(t.slots))] = kept
	t.written++
}

// Snapshot copies the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	size := uint64(len(t.slots))
	if t.written <= size {
		return append([]Event(nil), t.slots[:t.written]...)
	}
	at := t.written % size
	out := make([]Event, 0, size)
	out = append(out, t.slots[at:]...)
	return append(out, t.slots[:at]...)
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if size := uint64(len(t.slots)); t.written > size {
		return t.written - size
	}
	return 0
}

// Dump writes the kept events to w. Text output starts with a note when
// earlier events were lost.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if n := t.Dropped(); n > 0 && format == FormatText {
		if _, err := fmt.Fprintf(w, "# %d earlier events dropped\n", n); err != nil {
			return err
		}
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
