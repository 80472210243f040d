package admin

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var configKey = []byte("config")

func (m *Capability) Validate() error {
	if m.Holder.IsZero() {
		return errors.Field("Holder", errors.ErrEmpty, "required")
	}
	return errors.Field("Holder", m.Holder.Validate(), "invalid address")
}

func (m *Config) Validate() error {
	if m.SuperAdmin.IsZero() {
		return errors.Field("SuperAdmin", errors.ErrEmpty, "required")
	}
	return errors.Field("SuperAdmin", m.SuperAdmin.Validate(), "invalid address")
}

// Store gives access to the admin capabilities and the module configuration.
type Store struct {
	caps orm.ModelBucket
	conf orm.ModelBucket
}

// NewStore returns the store with the default bucket names.
func NewStore() Store {
	return Store{
		caps: orm.NewModelBucket("admin"),
		conf: orm.NewModelBucket("admin_conf"),
	}
}

// SuperAdmin returns the address allowed to grant and revoke capabilities.
func (s Store) SuperAdmin(db custody.ReadOnlyKVStore) (custody.Address, error) {
	var c Config
	if err := s.conf.One(db, configKey, &c); err != nil {
		return nil, errors.Wrap(err, "admin configuration")
	}
	return c.SuperAdmin, nil
}

func (s Store) setSuperAdmin(db custody.KVStore, addr custody.Address) error {
	return s.conf.Put(db, configKey, &Config{SuperAdmin: addr})
}

// IsAdmin returns true if given address holds the capability.
func (s Store) IsAdmin(db custody.ReadOnlyKVStore, addr custody.Address) (bool, error) {
	if addr.IsZero() {
		return false, nil
	}
	switch err := s.caps.Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

func (s Store) grant(db custody.KVStore, addr custody.Address) error {
	return s.caps.Put(db, addr, &Capability{Holder: addr})
}

func (s Store) revoke(db custody.KVStore, addr custody.Address) error {
	return s.caps.Delete(db, addr)
}
