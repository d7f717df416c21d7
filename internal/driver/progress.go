package driver

import "time"

// Stage is the pipeline step a progress event refers to.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageEmit
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageParse:
		return "parse"
	case StageEmit:
		return "emit"
	default:
		return "unknown"
	}
}

// Status reports where a file is within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	StatusCached
)

// ProgressEvent describes a file changing state during a directory run. An
// event with an empty File refers to the whole run.
type ProgressEvent struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// ProgressFunc receives events; it may be called from several goroutines.
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
