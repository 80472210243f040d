package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/orm"
)

// Models in this file follow codec.proto.

type Registry struct {
	Signers []custody.Address `json:"signers,omitempty"`
	Quorum  uint32            `json:"quorum,omitempty"`
}

func (m *Registry) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	for _, s := range m.Signers {
		e.Element(1, s)
	}
	e.Uint32(2, m.Quorum)
	return e.Result()
}

func (m *Registry) Unmarshal(raw []byte) error {
	*m = Registry{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Signers = append(m.Signers, d.Bytes())
		case 2:
			m.Quorum = d.Uint32()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

type TransferProposal struct {
	Recipient     custody.Address `json:"recipient,omitempty"`
	Amount        uint64          `json:"amount,omitempty"`
	ApprovalCount uint32          `json:"approval_count,omitempty"`
	Executed      bool            `json:"executed,omitempty"`
}

func (m *TransferProposal) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	e.Bytes(1, m.Recipient)
	e.Uint64(2, m.Amount)
	e.Uint32(3, m.ApprovalCount)
	e.Bool(4, m.Executed)
	return e.Result()
}

func (m *TransferProposal) Unmarshal(raw []byte) error {
	*m = TransferProposal{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Recipient = d.Bytes()
		case 2:
			m.Amount = d.Uint64()
		case 3:
			m.ApprovalCount = d.Uint32()
		case 4:
			m.Executed = d.Bool()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

type ChangeProposal struct {
	NewSigners    []custody.Address `json:"new_signers,omitempty"`
	NewQuorum     uint32            `json:"new_quorum,omitempty"`
	ApprovalCount uint32            `json:"approval_count,omitempty"`
	Executed      bool              `json:"executed,omitempty"`
}

func (m *ChangeProposal) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	for _, s := range m.NewSigners {
		e.Element(1, s)
	}
	e.Uint32(2, m.NewQuorum)
	e.Uint32(3, m.ApprovalCount)
	e.Bool(4, m.Executed)
	return e.Result()
}

func (m *ChangeProposal) Unmarshal(raw []byte) error {
	*m = ChangeProposal{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.NewSigners = append(m.NewSigners, d.Bytes())
		case 2:
			m.NewQuorum = d.Uint32()
		case 3:
			m.ApprovalCount = d.Uint32()
		case 4:
			m.Executed = d.Bool()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

type Approval struct {
	Signer custody.Address `json:"signer,omitempty"`
}

func (m *Approval) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	e.Bytes(1, m.Signer)
	return e.Result()
}

func (m *Approval) Unmarshal(raw []byte) error {
	*m = Approval{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Signer = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}

type Signer struct {
	Address custody.Address `json:"address,omitempty"`
}

func (m *Signer) Marshal() ([]byte, error) {
	e := orm.NewEncoder()
	e.Bytes(1, m.Address)
	return e.Result()
}

func (m *Signer) Unmarshal(raw []byte) error {
	*m = Signer{}
	d := orm.NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			m.Address = d.Bytes()
		default:
			d.Skip()
		}
	}
	return d.Err()
}
