package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
)

// Querier gives read only access to the multisig state.
type Querier struct {
	registry  RegistryBucket
	transfers TransferBucket
	changes   ChangeBucket
	control   cash.Controller
}

// NewQuerier returns a querier over the default buckets. The controller is
// used to read the vault balance.
func NewQuerier(control cash.Controller) Querier {
	return Querier{
		registry:  NewRegistryBucket(),
		transfers: NewTransferBucket(),
		changes:   NewChangeBucket(),
		control:   control,
	}
}

// Transfer returns the transfer proposal with given id. Unknown ids fail
// with ErrInvalidProposalID.
func (q Querier) Transfer(db custody.ReadOnlyKVStore, id uint64) (*TransferProposal, error) {
	p, err := q.transfers.Get(db, id)
	if err != nil {
		return nil, err
	}
	// A stored proposal always has an amount.
	if p.Amount == 0 {
		return nil, errors.Wrapf(ErrInvalidProposalID, "id %d", id)
	}
	return p, nil
}

// TransferApproved returns true if signer approved the transfer.
func (q Querier) TransferApproved(db custody.ReadOnlyKVStore, id uint64, signer custody.Address) (bool, error) {
	if _, err := q.Transfer(db, id); err != nil {
		return false, err
	}
	return q.transfers.Approved(db, id, signer)
}

// Change returns the change proposal with given id. Unknown ids fail with
// ErrInvalidProposalID.
func (q Querier) Change(db custody.ReadOnlyKVStore, id uint64) (*ChangeProposal, error) {
	p, err := q.changes.Get(db, id)
	if err != nil {
		return nil, err
	}
	if len(p.NewSigners) == 0 {
		return nil, errors.Wrapf(ErrInvalidProposalID, "id %d", id)
	}
	return p, nil
}

// ChangeApproved returns true if signer approved the change.
func (q Querier) ChangeApproved(db custody.ReadOnlyKVStore, id uint64, signer custody.Address) (bool, error) {
	if _, err := q.Change(db, id); err != nil {
		return false, err
	}
	return q.changes.Approved(db, id, signer)
}

// TransferCount returns the number of transfer proposals ever created.
func (q Querier) TransferCount(db custody.ReadOnlyKVStore) (uint64, error) {
	return q.transfers.Count(db)
}

// ChangeCount returns the number of change proposals ever created.
func (q Querier) ChangeCount(db custody.ReadOnlyKVStore) (uint64, error) {
	return q.changes.Count(db)
}

// Signers returns the current signers in registry order.
func (q Querier) Signers(db custody.ReadOnlyKVStore) ([]custody.Address, error) {
	reg, err := q.registry.Load(db)
	if err != nil {
		return nil, err
	}
	return reg.Signers, nil
}

// IsSigner returns true if the address is a current signer.
func (q Querier) IsSigner(db custody.ReadOnlyKVStore, addr custody.Address) (bool, error) {
	return q.registry.IsSigner(db, addr)
}

// Quorum returns the number of approvals currently required.
func (q Querier) Quorum(db custody.ReadOnlyKVStore) (uint32, error) {
	reg, err := q.registry.Load(db)
	if err != nil {
		return 0, err
	}
	return reg.Quorum, nil
}

// HeldBalance returns the value held in the vault.
func (q Querier) HeldBalance(db custody.ReadOnlyKVStore) (uint64, error) {
	return q.control.Balance(db, VaultAddress)
}
