package detect

import (
	"time"

	"axoproject/internal/manifest"
)

// Status is the state of one detector during a Detect call.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusFound   Status = "found"
	StatusMissing Status = "missing"
	StatusBroken  Status = "broken"
	// StatusSkipped marks detectors never run because an earlier one
	// already found a root.
	StatusSkipped Status = "skipped"
)

// Event reports a detector state change.
type Event struct {
	Ecosystem manifest.Ecosystem
	Status    Status
	Elapsed   time.Duration // set on terminal states
}

// ProgressSink receives events. It may be called from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

func outcomeStatus(found, failed bool) Status {
	switch {
	case found && failed:
		return StatusBroken
	case found:
		return StatusFound
	default:
		return StatusMissing
	}
}
