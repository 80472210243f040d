package custody

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification about a successfully committed state change. It
// is identified by its type, for example "transfer/created", and carries
// its details as key value tags.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent returns an event of given type without attributes.
func NewEvent(typ string) Event {
	return Event{Type: typ}
}

// With returns a copy of the event with an additional attribute.
func (e Event) With(key, value string) Event {
	attrs := make([]common.KVPair, len(e.Attributes), len(e.Attributes)+1)
	copy(attrs, e.Attributes)
	e.Attributes = append(attrs, common.KVPair{Key: []byte(key), Value: []byte(value)})
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, kv := range e.Attributes {
		if string(kv.Key) == key {
			return string(kv.Value), true
		}
	}
	return "", false
}

// EventSink receives events of every committed call, in the order the calls
// were processed.
type EventSink interface {
	Publish(ctx Context, events []Event) error
}

// MultiSink publishes to all sinks, stopping at the first failure.
type MultiSink []EventSink

var _ EventSink = MultiSink(nil)

// Publish implements EventSink.
func (m MultiSink) Publish(ctx Context, events []Event) error {
	for _, s := range m {
		if err := s.Publish(ctx, events); err != nil {
			return err
		}
	}
	return nil
}
