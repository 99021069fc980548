// Package pipeline defines the progress events the driver publishes while
// expanding declaration files, consumed by the optional terminal UI.
package pipeline

import "time"

// Stage describes one phase of the expansion pipeline.
type Stage string

const (
	// StageParse is the annotation parsing stage.
	StageParse Stage = "parse"
	// StageValidate is the range validation stage.
	StageValidate Stage = "validate"
	// StageExpand covers variant expansion and classifier synthesis.
	StageExpand Stage = "expand"
	// StageEmit is the code emission stage.
	StageEmit Stage = "emit"
	// StageWrite is the output write stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the file produced error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for one declaration file (or for the whole run
// when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// NopSink discards all events.
type NopSink struct{}

// OnEvent implements ProgressSink.
func (NopSink) OnEvent(Event) {}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
