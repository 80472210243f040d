package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestRecovery(t *testing.T) {
	panicky := custody.HandlerFunc(func(custody.Context, custody.KVStore, custody.Msg) (*custody.DeliverResult, error) {
		panic("boom")
	})
	h := weavetest.Decorate(panicky, NewRecovery())

	res, err := h.Deliver(context.Background(), store.MemStore(), &weavetest.Msg{})
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Nil(t, res)

	// errors pass through
	failing := weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrState}, NewRecovery())
	_, err = failing.Deliver(context.Background(), store.MemStore(), &weavetest.Msg{})
	assert.IsErr(t, errors.ErrState, err)
}
