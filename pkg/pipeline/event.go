package pipeline

import "time"

const (
	LOG = iota
)

const (
	LIVE = iota
	TIMEMACHINE
)

// Line is the raw unit produced by acquisition: one record as read from its
// source, plus provenance.
type Line struct {
	Raw     string            `json:"Raw,omitempty"     yaml:"Raw,omitempty"`
	Src     string            `json:"Src,omitempty"     yaml:"Src,omitempty"`
	Time    time.Time         `json:"Time,omitempty"    yaml:"Time,omitempty"`
	Labels  map[string]string `json:"Labels,omitempty"  yaml:"Labels,omitempty"`
	Process bool              `json:"Process,omitempty" yaml:"Process,omitempty"`
	Module  string            `json:"Module,omitempty"  yaml:"Module,omitempty"`
}

// Event is the structure flowing out of acquisition.
type Event struct {
	Type       int  `json:"Type,omitempty"       yaml:"Type,omitempty"`
	ExpectMode int  `json:"ExpectMode,omitempty" yaml:"ExpectMode,omitempty"`
	Line       Line `json:"Line,omitempty"       yaml:"Line,omitempty"`
	Process    bool `json:"Process,omitempty"    yaml:"Process,omitempty"`
}

func MakeEvent(timeMachine bool, evtType int, process bool) Event {
	evt := Event{
		ExpectMode: LIVE,
		Process:    process,
		Type:       evtType,
	}
	if timeMachine {
		evt.ExpectMode = TIMEMACHINE
	}

	return evt
}
