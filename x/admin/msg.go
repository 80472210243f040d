package admin

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var _ custody.Msg = (*GrantMsg)(nil)
var _ custody.Msg = (*RevokeMsg)(nil)

// GrantMsg gives the admin capability to an address.
type GrantMsg struct {
	Address custody.Address
}

func (GrantMsg) Path() string {
	return "admin/grant"
}

func (m *GrantMsg) Validate() error {
	return validateAddress(m.Address)
}

// RevokeMsg takes the admin capability away from an address.
type RevokeMsg struct {
	Address custody.Address
}

func (RevokeMsg) Path() string {
	return "admin/revoke"
}

func (m *RevokeMsg) Validate() error {
	return validateAddress(m.Address)
}

func validateAddress(a custody.Address) error {
	if a.IsZero() {
		return errors.Field("Address", errors.ErrEmpty, "required")
	}
	return errors.Field("Address", a.Validate(), "invalid address")
}
