package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/utils"
)

type router map[string]custody.Handler

func (r router) Handle(path string, h custody.Handler) { r[path] = h }

// admins is a static AdminChecker
type admins map[string]bool

func (a admins) IsMultisigAdmin(ctx custody.Context, db custody.ReadOnlyKVStore, addr custody.Address) bool {
	return a[string(addr)]
}

// payerFunc adapts a function to the cash.Payer interface.
type payerFunc func(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error

func (fn payerFunc) Pay(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error {
	return fn(ctx, db, from, to, amount)
}

type fixture struct {
	db      custody.CacheableKVStore
	control cash.BaseController
	routes  router
	query   Querier
	admins  admins
	// payer is used for executing transfers, nil means the controller
	payer cash.Payer
}

// newFixture returns a registry of given signers and quorum with funds held
// in the vault.
func newFixture(t testing.TB, signers []custody.Address, quorum uint32, funds uint64) *fixture {
	t.Helper()
	f := &fixture{
		db:      store.MemStore(),
		control: cash.NewController(cash.NewBucket()),
		admins:  admins{},
	}
	assert.Nil(t, NewRegistryBucket().Replace(f.db, signers, quorum))
	if funds > 0 {
		assert.Nil(t, f.control.IssueCoins(f.db, VaultAddress, funds))
	}
	f.routes = router{}
	RegisterRoutes(f.routes, f.control, payerFunc(f.pay), f.admins)
	f.query = NewQuerier(f.control)
	return f
}

func (f *fixture) pay(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error {
	if f.payer != nil {
		return f.payer.Pay(ctx, db, from, to, amount)
	}
	return f.control.Pay(ctx, db, from, to, amount)
}

// deliver runs the message as the caller inside of a savepoint, so that a
// failed call leaves no trace.
func (f *fixture) deliver(caller custody.Address, msg custody.Msg) (*custody.DeliverResult, error) {
	ctx := context.Background()
	if caller != nil {
		ctx = custody.WithCaller(ctx, caller)
	}
	h := weavetest.Decorate(f.routes[msg.Path()], utils.NewSavepoint())
	return h.Deliver(ctx, f.db, msg)
}

func (f *fixture) proposeTransfer(t testing.TB, caller, to custody.Address, amount uint64) uint64 {
	t.Helper()
	res, err := f.deliver(caller, &ProposeTransferMsg{Recipient: to, Amount: amount})
	assert.Nil(t, err)
	return decodeID(t, res.Data)
}

func (f *fixture) proposeChange(t testing.TB, caller custody.Address, signers []custody.Address, quorum uint32) uint64 {
	t.Helper()
	res, err := f.deliver(caller, &ProposeChangeMsg{NewSigners: signers, NewQuorum: quorum})
	assert.Nil(t, err)
	return decodeID(t, res.Data)
}

func (f *fixture) transfer(t testing.TB, id uint64) TransferProposal {
	t.Helper()
	p, err := f.query.Transfer(f.db, id)
	assert.Nil(t, err)
	return *p
}

func (f *fixture) change(t testing.TB, id uint64) ChangeProposal {
	t.Helper()
	p, err := f.query.Change(f.db, id)
	assert.Nil(t, err)
	return *p
}

func (f *fixture) balance(t testing.TB, addr custody.Address) uint64 {
	t.Helper()
	n, err := f.control.Balance(f.db, addr)
	assert.Nil(t, err)
	return n
}

func (f *fixture) isSigner(t testing.TB, addr custody.Address) bool {
	t.Helper()
	ok, err := f.query.IsSigner(f.db, addr)
	assert.Nil(t, err)
	return ok
}

func decodeID(t testing.TB, raw []byte) uint64 {
	t.Helper()
	if len(raw) != 8 {
		t.Fatalf("want an 8 byte id, got %X", raw)
	}
	var id uint64
	for _, b := range raw {
		id = id<<8 | uint64(b)
	}
	return id
}
