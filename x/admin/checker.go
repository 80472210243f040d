package admin

import (
	"github.com/iov-one/custody"
)

// Checker answers whether an address may use the admin rotation path of the
// multisig engine.
type Checker struct {
	store Store
}

// NewChecker returns a checker over the default store.
func NewChecker() Checker {
	return Checker{store: NewStore()}
}

// IsMultisigAdmin returns true if the address holds the admin capability.
// A storage failure is reported as not being an admin.
func (c Checker) IsMultisigAdmin(ctx custody.Context, db custody.ReadOnlyKVStore, addr custody.Address) bool {
	ok, err := c.store.IsAdmin(db, addr)
	if err != nil {
		custody.GetLogger(ctx).Error("admin capability lookup", "err", err)
		return false
	}
	return ok
}
