package weavetest

import (
	"sync"

	"github.com/iov-one/custody"
)

// EventRecorder is an in memory custody.EventSink. Set Err to make every
// publish fail.
type EventRecorder struct {
	mu     sync.Mutex
	events []custody.Event
	Err    error
}

var _ custody.EventSink = (*EventRecorder)(nil)

func (r *EventRecorder) Publish(ctx custody.Context, events []custody.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, events...)
	return nil
}

// Events returns all recorded events in publishing order.
func (r *EventRecorder) Events() []custody.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]custody.Event, len(r.events))
	copy(res, r.events)
	return res
}

// Types returns the type of every recorded event in publishing order.
func (r *EventRecorder) Types() []string {
	var res []string
	for _, e := range r.Events() {
		res = append(res, e.Type)
	}
	return res
}

// Reset drops all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
