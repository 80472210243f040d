package cash

import (
	"github.com/iov-one/custody/orm"
)

// Models in this file follow codec.proto.

type Wallet struct {
	Balance uint64 `json:"balance,omitempty"`
}

func (m *Wallet) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	e.Uint64(1, m.Balance)
	return e.Result()
}

func (m *Wallet) Unmarshal(raw []byte) error {
	*m = Wallet{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Balance = d.Uint64()
		default:
			d.Skip()
		}
	}
	return d.Err()
}
