package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorated handler
	ok, ov := []byte("demo"), []byte("data")
	// key, value the handler tries to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		handler *weavetest.Handler
		wantErr *errors.Error
		written [][]byte
		missing [][]byte
	}{
		"handler fails, its writes are dropped": {
			handler: &weavetest.Handler{WriteKey: nk, Write: nv, DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"handler succeeds, its writes are kept": {
			handler: &weavetest.Handler{WriteKey: nk, Write: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			assert.Nil(t, kv.Set(ok, ov))

			h := weavetest.Decorate(tc.handler, NewSavepoint())
			_, err := h.Deliver(context.Background(), kv, &weavetest.Msg{})
			assert.IsErr(t, tc.wantErr, err)

			for _, k := range tc.written {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, true, has)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, false, has)
			}
		})
	}
}
