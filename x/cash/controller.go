package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error
	IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error
}

// Payer moves value out of a wallet as part of a bigger operation.
//
// Implementations receive the context of the operation in progress and must
// pass it on to anything they call. All state must be read and written
// through db. The operation holds the app.Engine lock while paying, so a
// payer calling any Engine method, readers included, blocks forever or
// fails with errors.ErrReentrant.
type Payer interface {
	Pay(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error
}

// BaseController is the default Controller implementation. It is also a
// Payer that moves coins.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}
var _ Payer = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given address. A missing wallet holds
// nothing.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil || w == nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	// Loading the recipient after the sender is saved makes moving coins
	// to self a noop.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// Pay moves coins. The context is not used.
func (c BaseController) Pay(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error {
	return c.MoveCoins(db, from, to, amount)
}
