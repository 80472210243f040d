package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
	Validate() error
}

// ModelBucket stores models of a single kind under a common key prefix.
//
// A bucket does not know the concrete type it stores. The caller provides
// the destination when loading, which keeps buckets free of reflection.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists, ErrNotFound
	// otherwise.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error
}

// schemaVersion is written as the first byte of every stored value. It
// also keeps values of empty models from being empty.
const schemaVersion byte = 1

// NewModelBucket returns a ModelBucket storing all entities under
// "<name>:" prefixed keys.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return &modelBucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
}

func (mb *modelBucket) dbKey(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errors.Wrap(ErrInvalidIndex, "empty key")
	}
	res := make([]byte, 0, len(mb.prefix)+len(key))
	res = append(res, mb.prefix...)
	return append(res, key...), nil
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	k, err := mb.dbKey(key)
	if err != nil {
		return err
	}
	raw, err := db.Get(k)
	if err != nil {
		return errors.Wrapf(err, "cannot load %s", mb.name)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.name)
	}
	if len(raw) == 0 || raw[0] != schemaVersion {
		return errors.Wrapf(errors.ErrModel, "unknown %s schema", mb.name)
	}
	if err := dest.Unmarshal(raw[1:]); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	k, err := mb.dbKey(key)
	if err != nil {
		return err
	}
	ok, err := db.Has(k)
	if err != nil {
		return errors.Wrapf(err, "cannot check %s", mb.name)
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.name)
	}
	return nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	k, err := mb.dbKey(key)
	if err != nil {
		return err
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %s: %s", mb.name, err)
	}
	value := make([]byte, 0, len(raw)+1)
	value = append(value, schemaVersion)
	value = append(value, raw...)
	if err := db.Set(k, value); err != nil {
		return errors.Wrapf(err, "cannot store %s", mb.name)
	}
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	k, _ := mb.dbKey(key)
	if err := db.Delete(k); err != nil {
		return errors.Wrapf(err, "cannot delete %s", mb.name)
	}
	return nil
}

// isBucketName accepts lowercase letters and underscores only, so that
// prefixes of different buckets never collide with each other or with
// sequence keys.
func isBucketName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	return true
}
