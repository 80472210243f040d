package utils

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

type guardKey struct{}

// InFlight returns true if the context belongs to a call that passed a
// ReentrancyGuard and has not returned yet.
func InFlight(ctx custody.Context) bool {
	v, _ := ctx.Value(guardKey{}).(bool)
	return v
}

// ReentrancyGuard rejects a message delivered with the context of another
// message that is still being processed. Anything called by a handler, like
// a payment, inherits that context.
type ReentrancyGuard struct{}

var _ custody.Decorator = ReentrancyGuard{}

// NewReentrancyGuard creates a ReentrancyGuard decorator
func NewReentrancyGuard() ReentrancyGuard {
	return ReentrancyGuard{}
}

// Deliver marks the context for the duration of the call.
func (ReentrancyGuard) Deliver(ctx custody.Context, store custody.KVStore, msg custody.Msg, next custody.Handler) (*custody.DeliverResult, error) {
	if InFlight(ctx) {
		return nil, errors.Wrapf(errors.ErrReentrant, "%s", msg.Path())
	}
	return next.Deliver(context.WithValue(ctx, guardKey{}, true), store, msg)
}
