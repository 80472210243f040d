package admin

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/orm"
)

// Models in this file follow codec.proto.

type Capability struct {
	Holder custody.Address `json:"holder,omitempty"`
}

func (m *Capability) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	e.Bytes(1, m.Holder)
	return e.Result()
}

func (m *Capability) Unmarshal(raw []byte) error {
	*m = Capability{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Holder = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

type Config struct {
	SuperAdmin custody.Address `json:"super_admin,omitempty"`
}

func (m *Config) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	e.Bytes(1, m.SuperAdmin)
	return e.Result()
}

func (m *Config) Unmarshal(raw []byte) error {
	*m = Config{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.SuperAdmin = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}
