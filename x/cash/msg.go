package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Ensure we implement the Msg interface
var _ custody.Msg = (*DepositMsg)(nil)

// DepositMsg moves coins from the caller wallet to the vault.
type DepositMsg struct {
	Amount uint64
}

// Path returns the routing path for this message
func (DepositMsg) Path() string {
	return "cash/deposit"
}

// Validate makes sure that this is sensible
func (m *DepositMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Field("Amount", errors.ErrAmount, "must be greater than zero")
	}
	return nil
}
