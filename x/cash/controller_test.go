package cash

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	cases := map[string]struct {
		issue     uint64
		move      uint64
		src, dest []byte
		wantErr   *errors.Error
		wantSrc   uint64
		wantDest  uint64
	}{
		"move part of the balance": {
			issue: 10, move: 7, src: alice, dest: bob,
			wantSrc: 3, wantDest: 7,
		},
		"move everything": {
			issue: 10, move: 10, src: alice, dest: bob,
			wantSrc: 0, wantDest: 10,
		},
		"insufficient funds": {
			issue: 10, move: 11, src: alice, dest: bob,
			wantErr: errors.ErrAmount, wantSrc: 10,
		},
		"zero amount": {
			issue: 10, move: 0, src: alice, dest: bob,
			wantErr: errors.ErrAmount, wantSrc: 10,
		},
		"missing source wallet": {
			move: 1, src: bob, dest: alice,
			wantErr: errors.ErrEmpty,
		},
		"move to self": {
			issue: 5, move: 5, src: alice, dest: alice,
			wantSrc: 5, wantDest: 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController(NewBucket())
			if tc.issue > 0 {
				assert.Nil(t, c.IssueCoins(db, alice, tc.issue))
			}

			cache := db.CacheWrap()
			err := c.MoveCoins(cache, tc.src, tc.dest, tc.move)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				cache.Discard()
			} else {
				assert.Nil(t, err)
				assert.Nil(t, cache.Write())
			}

			got, err := c.Balance(db, tc.src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, got)
			got, err = c.Balance(db, tc.dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDest, got)
		})
	}
}

func TestIssueCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewBucket())
	addr := weavetest.NewAddress()

	assert.Nil(t, c.IssueCoins(db, addr, ^uint64(0)))
	assert.IsErr(t, errors.ErrOverflow, c.IssueCoins(db, addr, 1))

	got, err := c.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, ^uint64(0), got)
}

func TestBalanceOfUnknownAddress(t *testing.T) {
	c := NewController(NewBucket())
	got, err := c.Balance(store.MemStore(), weavetest.NewAddress())
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestWalletEncoding(t *testing.T) {
	w := Wallet{Balance: 1234567}
	raw, err := w.Marshal()
	assert.Nil(t, err)

	var got Wallet
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, w, got)
}
