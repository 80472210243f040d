package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const bucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate always passes, an empty wallet is a valid wallet.
func (m *Wallet) Validate() error {
	return nil
}

// Add increases the balance, failing on overflow.
func (m *Wallet) Add(amount uint64) error {
	sum := m.Balance + amount
	if sum < m.Balance {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", m.Balance, amount)
	}
	m.Balance = sum
	return nil
}

// Subtract decreases the balance, failing if there are not enough funds.
func (m *Wallet) Subtract(amount uint64) error {
	if m.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", m.Balance, amount)
	}
	m.Balance -= amount
	return nil
}

// Bucket stores wallets by owner address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing wallets
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(bucketName)}
}

// Get returns the wallet of given address. A missing wallet is returned as
// nil without an error.
func (b Bucket) Get(db custody.ReadOnlyKVStore, addr custody.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the wallet of given address, or a new empty one.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, addr custody.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err == nil && w == nil {
		w = &Wallet{}
	}
	return w, err
}

// Save stores the wallet under the owner address.
func (b Bucket) Save(db custody.KVStore, addr custody.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet owner")
	}
	return b.Put(db, addr, w)
}
