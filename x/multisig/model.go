package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var (
	_ orm.Model = (*Registry)(nil)
	_ orm.Model = (*TransferProposal)(nil)
	_ orm.Model = (*ChangeProposal)(nil)
	_ orm.Model = (*Approval)(nil)
	_ orm.Model = (*Signer)(nil)
)

// ValidateSigners checks a signer list and quorum the way the registry
// requires them. The first violation found is returned.
func ValidateSigners(signers []custody.Address, quorum uint32) error {
	if len(signers) == 0 {
		return errors.Field("Signers", ErrEmptySignerSet, "at least one signer required")
	}
	if quorum == 0 {
		return errors.Field("Quorum", ErrZeroQuorum, "at least one approval required")
	}
	if int64(quorum) > int64(len(signers)) {
		return errors.Field("Quorum", ErrQuorumExceedsSignerCount, "%d > %d", quorum, len(signers))
	}
	seen := make(map[string]struct{}, len(signers))
	for i, s := range signers {
		if s.IsZero() {
			return errors.FieldIndex("Signers", i, ErrZeroAddressSigner, "zero address")
		}
		if err := s.Validate(); err != nil {
			return errors.FieldIndex("Signers", i, err, "invalid address")
		}
		if _, ok := seen[string(s)]; ok {
			return errors.FieldIndex("Signers", i, ErrDuplicateSigner, "%s", s)
		}
		seen[string(s)] = struct{}{}
	}
	return nil
}

// Validate ensures the registry can gate proposals.
func (m *Registry) Validate() error {
	return ValidateSigners(m.Signers, m.Quorum)
}

// Copy returns a deep copy.
func (m *Registry) Copy() *Registry {
	return &Registry{
		Signers: cloneAddresses(m.Signers),
		Quorum:  m.Quorum,
	}
}

// Validate ensures the proposal can be paid out.
func (m *TransferProposal) Validate() error {
	var errs error
	if m.Recipient.IsZero() {
		errs = errors.AppendField(errs, "Recipient", ErrZeroRecipient)
	} else {
		errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	}
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", ErrZeroAmount)
	}
	if m.ApprovalCount == 0 {
		errs = errors.AppendField(errs, "ApprovalCount", errors.ErrModel)
	}
	return errs
}

// Copy returns a deep copy.
func (m *TransferProposal) Copy() *TransferProposal {
	c := *m
	c.Recipient = m.Recipient.Clone()
	return &c
}

// Validate checks the stored change. Quorum and signers are validated
// against each other as they will form the next registry.
func (m *ChangeProposal) Validate() error {
	if m.ApprovalCount == 0 {
		return errors.Field("ApprovalCount", errors.ErrModel, "must be at least one")
	}
	return ValidateSigners(m.NewSigners, m.NewQuorum)
}

// Copy returns a deep copy.
func (m *ChangeProposal) Copy() *ChangeProposal {
	c := *m
	c.NewSigners = cloneAddresses(m.NewSigners)
	return &c
}

func (m *Approval) Validate() error {
	if m.Signer.IsZero() {
		return errors.Field("Signer", errors.ErrEmpty, "required")
	}
	return nil
}

func (m *Signer) Validate() error {
	if m.Address.IsZero() {
		return errors.Field("Address", ErrZeroAddressSigner, "required")
	}
	return nil
}

func cloneAddresses(addrs []custody.Address) []custody.Address {
	if addrs == nil {
		return nil
	}
	res := make([]custody.Address, len(addrs))
	for i, a := range addrs {
		res[i] = a.Clone()
	}
	return res
}
