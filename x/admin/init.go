package admin

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "admin"

// Genesis is the admin section of the genesis file.
type Genesis struct {
	SuperAdmin custody.Address   `json:"super_admin"`
	Admins     []custody.Address `json:"admins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the super admin and the initial admins. The section is
// optional, without it nobody can use the admin path.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if gen.SuperAdmin == nil && len(gen.Admins) == 0 {
		return nil
	}
	s := NewStore()
	if err := s.setSuperAdmin(kv, gen.SuperAdmin); err != nil {
		return errors.Wrap(err, "super admin")
	}
	for i, a := range gen.Admins {
		if err := s.grant(kv, a); err != nil {
			return errors.Wrapf(err, "admin %d", i)
		}
	}
	return nil
}
