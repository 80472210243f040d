package admin

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

type router map[string]custody.Handler

func (r router) Handle(path string, h custody.Handler) { r[path] = h }

func TestGrantAndRevoke(t *testing.T) {
	super := weavetest.NewAddress()
	alice := weavetest.NewAddress()
	mallory := weavetest.NewAddress()

	cases := map[string]struct {
		caller    custody.Address
		msgs      []custody.Msg
		wantErr   *errors.Error
		wantAdmin bool
		wantEvent string
	}{
		"super admin grants": {
			caller:    super,
			msgs:      []custody.Msg{&GrantMsg{Address: alice}},
			wantAdmin: true,
			wantEvent: EventGranted,
		},
		"super admin grants and revokes": {
			caller:    super,
			msgs:      []custody.Msg{&GrantMsg{Address: alice}, &RevokeMsg{Address: alice}},
			wantAdmin: false,
			wantEvent: EventRevoked,
		},
		"granting twice": {
			caller:    super,
			msgs:      []custody.Msg{&GrantMsg{Address: alice}, &GrantMsg{Address: alice}},
			wantErr:   errors.ErrDuplicate,
			wantAdmin: true,
		},
		"revoking a non admin": {
			caller:  super,
			msgs:    []custody.Msg{&RevokeMsg{Address: alice}},
			wantErr: errors.ErrNotFound,
		},
		"zero address": {
			caller:  super,
			msgs:    []custody.Msg{&GrantMsg{Address: make(custody.Address, custody.AddressLength)}},
			wantErr: errors.ErrEmpty,
		},
		"only the super admin may grant": {
			caller:  mallory,
			msgs:    []custody.Msg{&GrantMsg{Address: alice}},
			wantErr: errors.ErrUnauthorized,
		},
		"no caller": {
			msgs:    []custody.Msg{&GrantMsg{Address: alice}},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewStore()
			assert.Nil(t, s.setSuperAdmin(db, super))

			r := router{}
			RegisterRoutes(r)

			ctx := context.Background()
			if tc.caller != nil {
				ctx = custody.WithCaller(ctx, tc.caller)
			}
			var (
				res *custody.DeliverResult
				err error
			)
			for _, m := range tc.msgs {
				res, err = r[m.Path()].Deliver(ctx, db, m)
				if err != nil {
					break
				}
			}
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
				assert.Event(t, res.Events, tc.wantEvent)
			}

			got := NewChecker().IsMultisigAdmin(ctx, db, alice)
			assert.Equal(t, tc.wantAdmin, got)
		})
	}
}

func TestGenesis(t *testing.T) {
	super := weavetest.NewAddress()
	admin := weavetest.NewAddress()
	db := store.MemStore()

	opts := custody.Options{
		optKey: []byte(`{"super_admin": "` + super.String() + `", "admins": ["` + admin.String() + `"]}`),
	}
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	got, err := NewStore().SuperAdmin(db)
	assert.Nil(t, err)
	assert.Equal(t, super, got)
	assert.Equal(t, true, NewChecker().IsMultisigAdmin(context.Background(), db, admin))
	assert.Equal(t, false, NewChecker().IsMultisigAdmin(context.Background(), db, super))

	err = Initializer{}.FromGenesis(custody.Options{optKey: []byte(`{"admins": []}`)}, store.MemStore())
	assert.Nil(t, err)

	err = Initializer{}.FromGenesis(custody.Options{optKey: []byte(`{"admins": ["` + admin.String() + `"]}`)}, store.MemStore())
	assert.IsErr(t, errors.ErrEmpty, err)
}
