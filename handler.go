package custody

import (
	"encoding/json"
)

// Msg is a single operation requested by the caller. Every message knows
// where it should be routed and can validate its own content without
// looking at the state.
type Msg interface {
	// Path returns the routing path for this message.
	Path() string

	// Validate performs a sanity check of the message content.
	Validate() error
}

// Handler is a core engine that can process a few specific messages
// This could represent "propose a transfer", or "approve a change"
type Handler interface {
	Deliver(ctx Context, db KVStore, msg Msg) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging, or rollback on failure, to many Handlers
type Decorator interface {
	Deliver(ctx Context, db KVStore, msg Msg, next Handler) (*DeliverResult, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx Context, db KVStore, msg Msg) (*DeliverResult, error)

// Deliver calls fn.
func (fn HandlerFunc) Deliver(ctx Context, db KVStore, msg Msg) (*DeliverResult, error) {
	return fn(ctx, db, msg)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// DeliverResult captures any non-error output of a delivered message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an id.
	Data []byte

	// Log is human-readable informational string
	Log string

	// Events are published only once the call state is committed.
	Events []Event
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return multiInitializer{inits}
}

type multiInitializer struct {
	inits []Initializer
}

// FromGenesis passes the options to every initializer in order.
func (m multiInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range m.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
