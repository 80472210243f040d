package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var registryKey = []byte("registry")

// RegistryBucket stores the single registry and a membership marker for
// every current signer, so that a membership test is a single key lookup.
type RegistryBucket struct {
	registry orm.ModelBucket
	members  orm.ModelBucket
}

// NewRegistryBucket returns a bucket with the default names.
func NewRegistryBucket() RegistryBucket {
	return RegistryBucket{
		registry: orm.NewModelBucket("msig"),
		members:  orm.NewModelBucket("msig_signer"),
	}
}

// Load returns the current registry.
func (b RegistryBucket) Load(db custody.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	if err := b.registry.One(db, registryKey, &r); err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	return &r, nil
}

// Exists returns true once a registry was stored.
func (b RegistryBucket) Exists(db custody.ReadOnlyKVStore) (bool, error) {
	switch err := b.registry.Has(db, registryKey); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// IsSigner returns true if the address is a member of the current registry.
func (b RegistryBucket) IsSigner(db custody.ReadOnlyKVStore, addr custody.Address) (bool, error) {
	if addr.IsZero() {
		return false, nil
	}
	switch err := b.members.Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Replace swaps the whole registry. Membership of every previous signer is
// cleared before the new signers are stored.
func (b RegistryBucket) Replace(db custody.KVStore, signers []custody.Address, quorum uint32) error {
	next := &Registry{Signers: cloneAddresses(signers), Quorum: quorum}
	if err := next.Validate(); err != nil {
		return err
	}

	prev, err := b.Load(db)
	switch {
	case err == nil:
		for _, s := range prev.Signers {
			if err := b.members.Delete(db, s); err != nil {
				return errors.Wrap(err, "clear membership")
			}
		}
	case errors.ErrNotFound.Is(err):
		// first registry
	default:
		return err
	}

	for _, s := range next.Signers {
		if err := b.members.Put(db, s, &Signer{Address: s}); err != nil {
			return errors.Wrap(err, "store membership")
		}
	}
	return b.registry.Put(db, registryKey, next)
}

// proposalBucket keeps proposals of a single kind under ids allocated from
// a sequence, together with the approval records of each proposal.
type proposalBucket struct {
	proposals orm.ModelBucket
	approvals orm.ModelBucket
	seq       orm.Sequence
}

func newProposalBucket(name string) proposalBucket {
	return proposalBucket{
		proposals: orm.NewModelBucket(name),
		approvals: orm.NewModelBucket(name + "_approval"),
		seq:       orm.NewSequence(name, "id"),
	}
}

// Count returns the number of proposals ever created. Ids start at 0, so
// it is also the next id.
func (b proposalBucket) Count(db custody.ReadOnlyKVStore) (uint64, error) {
	return b.seq.Latest(db)
}

func (b proposalBucket) create(db custody.KVStore, m orm.Model) (uint64, error) {
	n, err := b.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "allocate id")
	}
	id := n - 1
	if err := b.proposals.Put(db, orm.EncodeSequence(id), m); err != nil {
		return 0, err
	}
	return id, nil
}

func (b proposalBucket) load(db custody.ReadOnlyKVStore, id uint64, dest orm.Model) error {
	err := b.proposals.One(db, orm.EncodeSequence(id), dest)
	if errors.ErrNotFound.Is(err) {
		return errors.Wrapf(ErrInvalidProposalID, "id %d", id)
	}
	return err
}

func (b proposalBucket) save(db custody.KVStore, id uint64, m orm.Model) error {
	return b.proposals.Put(db, orm.EncodeSequence(id), m)
}

func approvalKey(id uint64, signer custody.Address) []byte {
	return append(orm.EncodeSequence(id), signer...)
}

// approved returns true if the signer approved the proposal.
func (b proposalBucket) approved(db custody.ReadOnlyKVStore, id uint64, signer custody.Address) (bool, error) {
	switch err := b.approvals.Has(db, approvalKey(id, signer)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

func (b proposalBucket) recordApproval(db custody.KVStore, id uint64, signer custody.Address) error {
	return b.approvals.Put(db, approvalKey(id, signer), &Approval{Signer: signer})
}

// TransferBucket stores transfer proposals.
type TransferBucket struct {
	proposalBucket
}

// NewTransferBucket returns a bucket with the default names.
func NewTransferBucket() TransferBucket {
	return TransferBucket{newProposalBucket("msig_transfer")}
}

// Create stores a new proposal and returns its id.
func (b TransferBucket) Create(db custody.KVStore, p *TransferProposal) (uint64, error) {
	return b.create(db, p)
}

// Get returns the proposal with given id or ErrInvalidProposalID.
func (b TransferBucket) Get(db custody.ReadOnlyKVStore, id uint64) (*TransferProposal, error) {
	var p TransferProposal
	if err := b.load(db, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save updates an existing proposal.
func (b TransferBucket) Save(db custody.KVStore, id uint64, p *TransferProposal) error {
	return b.save(db, id, p)
}

// Approved returns true if the signer approved the proposal.
func (b TransferBucket) Approved(db custody.ReadOnlyKVStore, id uint64, signer custody.Address) (bool, error) {
	return b.approved(db, id, signer)
}

// RecordApproval stores the approval of the signer.
func (b TransferBucket) RecordApproval(db custody.KVStore, id uint64, signer custody.Address) error {
	return b.recordApproval(db, id, signer)
}

// ChangeBucket stores signer and quorum change proposals. Ids are
// allocated independently from transfers.
type ChangeBucket struct {
	proposalBucket
}

// NewChangeBucket returns a bucket with the default names.
func NewChangeBucket() ChangeBucket {
	return ChangeBucket{newProposalBucket("msig_change")}
}

// Create stores a new proposal and returns its id.
func (b ChangeBucket) Create(db custody.KVStore, p *ChangeProposal) (uint64, error) {
	return b.create(db, p)
}

// Get returns the proposal with given id or ErrInvalidProposalID.
func (b ChangeBucket) Get(db custody.ReadOnlyKVStore, id uint64) (*ChangeProposal, error) {
	var p ChangeProposal
	if err := b.load(db, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save updates an existing proposal.
func (b ChangeBucket) Save(db custody.KVStore, id uint64, p *ChangeProposal) error {
	return b.save(db, id, p)
}

// Approved returns true if the signer approved the proposal.
func (b ChangeBucket) Approved(db custody.ReadOnlyKVStore, id uint64, signer custody.Address) (bool, error) {
	return b.approved(db, id, signer)
}

// RecordApproval stores the approval of the signer.
func (b ChangeBucket) RecordApproval(db custody.KVStore, id uint64, signer custody.Address) error {
	return b.recordApproval(db, id, signer)
}
