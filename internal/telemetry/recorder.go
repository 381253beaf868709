package telemetry

import (
	"sync"
)

type EventKind int

const (
	EventBroken EventKind = iota
	EventWarning
	EventDebug
	EventCount
)

type Event struct {
	Kind   EventKind
	Id     string
	Params []any
	Count  int64
}

// Recorder is an API that keeps every report in memory, tests use it to
// assert that failures get reported.
type Recorder struct {
	mutex  sync.Mutex
	events []Event
}

func (r *Recorder) push(e Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.push(Event{Kind: EventBroken, Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.push(Event{Kind: EventWarning, Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.push(Event{Kind: EventDebug, Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.push(Event{Kind: EventCount, Id: id, Count: count})
}

// Events returns a copy of the recorded events of the given kind.
func (r *Recorder) Events(kind EventKind) []Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
