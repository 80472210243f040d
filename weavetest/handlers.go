package weavetest

import "github.com/iov-one/custody"

// Handler is a mock implementation of the custody.Handler interface.
//
// Set DeliverErr to force an error response. Every call is counted.
type Handler struct {
	deliverCall int

	// DeliverResult is returned when DeliverErr is not set.
	DeliverResult custody.DeliverResult
	DeliverErr    error

	// Write, if set, is stored under WriteKey before returning. Use it to
	// check that state written by a failed call is rolled back.
	WriteKey []byte
	Write    []byte
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Deliver(ctx custody.Context, db custody.KVStore, msg custody.Msg) (*custody.DeliverResult, error) {
	h.deliverCall++
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.Write); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CallCount() int {
	return h.deliverCall
}

// Msg is a mock implementation of the custody.Msg interface.
type Msg struct {
	RoutePath string
	Err       error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
