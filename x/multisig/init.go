package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "multisig"

// Genesis is the multisig section of the genesis file.
type Genesis struct {
	Signers []custody.Address `json:"signers"`
	Quorum  uint32            `json:"quorum"`
}

// Initializer creates the registry from the genesis file.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis validates and stores the initial registry. The section is
// required and can be applied only once.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	b := NewRegistryBucket()
	switch ok, err := b.Exists(kv); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "registry already initialized")
	}
	if err := ValidateSigners(gen.Signers, gen.Quorum); err != nil {
		return errors.Wrap(err, "genesis")
	}
	return b.Replace(kv, gen.Signers, gen.Quorum)
}
