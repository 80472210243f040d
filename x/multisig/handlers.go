package multisig

import (
	"strconv"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
)

const (
	EventTransferCreated  = "transfer/created"
	EventTransferApproved = "transfer/approved"
	EventTransferExecuted = "transfer/executed"
	EventChangeCreated    = "change/created"
	EventChangeApproved   = "change/approved"
	EventChangeExecuted   = "change/executed"
	EventRegistryUpdated  = "registry/updated"
)

// VaultAddress is the wallet holding the value guarded by the signers.
var VaultAddress = custody.NewAddress([]byte("multisig/vault"))

// AdminChecker answers whether an address may rotate the registry without
// a proposal.
type AdminChecker interface {
	IsMultisigAdmin(ctx custody.Context, db custody.ReadOnlyKVStore, addr custody.Address) bool
}

// RegisterRoutes will instantiate and register all handlers in this
// package. The controller reads the vault balance and the payer pays out
// executed transfers.
func RegisterRoutes(r custody.Registry, control cash.Controller, payer cash.Payer, admins AdminChecker) {
	a := newAuth()
	r.Handle(pathProposeTransfer, ProposeTransferHandler{auth: a, control: control})
	r.Handle(pathApproveTransfer, ApproveTransferHandler{auth: a})
	r.Handle(pathExecuteTransfer, ExecuteTransferHandler{auth: a, control: control, payer: payer})
	r.Handle(pathProposeChange, ProposeChangeHandler{auth: a})
	r.Handle(pathApproveChange, ApproveChangeHandler{auth: a})
	r.Handle(pathExecuteChange, ExecuteChangeHandler{auth: a})
	r.Handle(pathUpdateSigners, UpdateSignersHandler{auth: a, admins: admins})
	r.Handle(pathUpdateQuorum, UpdateQuorumHandler{auth: a, admins: admins})
}

// auth holds the buckets shared by all handlers and resolves the caller.
type auth struct {
	registry  RegistryBucket
	transfers TransferBucket
	changes   ChangeBucket
}

func newAuth() auth {
	return auth{
		registry:  NewRegistryBucket(),
		transfers: NewTransferBucket(),
		changes:   NewChangeBucket(),
	}
}

// requireSigner returns the caller if it is a member of the current
// registry.
func (a auth) requireSigner(ctx custody.Context, db custody.ReadOnlyKVStore) (custody.Address, error) {
	caller, ok := custody.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(ErrNotASigner, "caller missing")
	}
	switch ok, err := a.registry.IsSigner(db, caller); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, errors.Wrapf(ErrNotASigner, "%s", caller)
	}
	return caller, nil
}

// ProposeTransferHandler creates transfer proposals.
type ProposeTransferHandler struct {
	auth
	control cash.Controller
}

var _ custody.Handler = ProposeTransferHandler{}

func (h ProposeTransferHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*ProposeTransferMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, err := h.requireSigner(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	held, err := h.control.Balance(db, VaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "vault balance")
	}
	if held == 0 {
		return nil, errors.Wrap(ErrNoFundsHeld, "vault is empty")
	}

	p := &TransferProposal{
		Recipient:     msg.Recipient.Clone(),
		Amount:        msg.Amount,
		ApprovalCount: 1,
	}
	id, err := h.transfers.Create(db, p)
	if err != nil {
		return nil, errors.Wrap(err, "create transfer")
	}
	if err := h.transfers.RecordApproval(db, id, caller); err != nil {
		return nil, errors.Wrap(err, "record approval")
	}

	ev := custody.NewEvent(EventTransferCreated).
		With("id", formatID(id)).
		With("recipient", p.Recipient.String()).
		With("amount", strconv.FormatUint(p.Amount, 10)).
		With("proposer", caller.String())
	return &custody.DeliverResult{Data: orm.EncodeSequence(id), Events: []custody.Event{ev}}, nil
}

// ApproveTransferHandler counts an approval of a signer.
type ApproveTransferHandler struct {
	auth
}

var _ custody.Handler = ApproveTransferHandler{}

func (h ApproveTransferHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*ApproveTransferMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, err := h.requireSigner(ctx, db)
	if err != nil {
		return nil, err
	}
	p, err := h.transfers.Get(db, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrProposalAlreadyExecuted, "transfer %d", msg.ProposalID)
	}
	switch ok, err := h.transfers.Approved(db, msg.ProposalID, caller); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(ErrAlreadyApproved, "transfer %d by %s", msg.ProposalID, caller)
	}

	p.ApprovalCount++
	if err := h.transfers.RecordApproval(db, msg.ProposalID, caller); err != nil {
		return nil, errors.Wrap(err, "record approval")
	}
	if err := h.transfers.Save(db, msg.ProposalID, p); err != nil {
		return nil, errors.Wrap(err, "save transfer")
	}

	ev := custody.NewEvent(EventTransferApproved).
		With("id", formatID(msg.ProposalID)).
		With("signer", caller.String()).
		With("approvals", strconv.FormatUint(uint64(p.ApprovalCount), 10))
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}

// ExecuteTransferHandler pays out a transfer that reached the quorum.
//
// The proposal is marked executed before the payment is made. If the
// payment fails the error aborts the call and the store used for the call
// must be discarded, this is what the Savepoint decorator does.
type ExecuteTransferHandler struct {
	auth
	control cash.Controller
	payer   cash.Payer
}

var _ custody.Handler = ExecuteTransferHandler{}

func (h ExecuteTransferHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*ExecuteTransferMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if _, err := h.requireSigner(ctx, db); err != nil {
		return nil, err
	}
	p, err := h.transfers.Get(db, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrProposalAlreadyExecuted, "transfer %d", msg.ProposalID)
	}
	reg, err := h.registry.Load(db)
	if err != nil {
		return nil, err
	}
	if p.ApprovalCount < reg.Quorum {
		return nil, newQuorumError(ErrQuorumNotMet, reg.Quorum, p.ApprovalCount)
	}
	held, err := h.control.Balance(db, VaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "vault balance")
	}
	if held < p.Amount {
		return nil, errors.Wrap(&BalanceError{Held: held, Requested: p.Amount}, "vault")
	}

	p.Executed = true
	if err := h.transfers.Save(db, msg.ProposalID, p); err != nil {
		return nil, errors.Wrap(err, "save transfer")
	}
	if err := h.payer.Pay(ctx, db, VaultAddress, p.Recipient, p.Amount); err != nil {
		return nil, errors.Wrapf(ErrPaymentFailed, "transfer %d: %s", msg.ProposalID, err)
	}

	ev := custody.NewEvent(EventTransferExecuted).
		With("id", formatID(msg.ProposalID)).
		With("recipient", p.Recipient.String()).
		With("amount", strconv.FormatUint(p.Amount, 10))
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}

// ProposeChangeHandler creates signer and quorum change proposals.
type ProposeChangeHandler struct {
	auth
}

var _ custody.Handler = ProposeChangeHandler{}

func (h ProposeChangeHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*ProposeChangeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, err := h.requireSigner(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	p := &ChangeProposal{
		NewSigners:    cloneAddresses(msg.NewSigners),
		NewQuorum:     msg.NewQuorum,
		ApprovalCount: 1,
	}
	id, err := h.changes.Create(db, p)
	if err != nil {
		return nil, errors.Wrap(err, "create change")
	}
	if err := h.changes.RecordApproval(db, id, caller); err != nil {
		return nil, errors.Wrap(err, "record approval")
	}

	ev := custody.NewEvent(EventChangeCreated).
		With("id", formatID(id)).
		With("signers", formatAddresses(p.NewSigners)).
		With("quorum", strconv.FormatUint(uint64(p.NewQuorum), 10)).
		With("proposer", caller.String())
	return &custody.DeliverResult{Data: orm.EncodeSequence(id), Events: []custody.Event{ev}}, nil
}

// ApproveChangeHandler counts an approval of a signer.
type ApproveChangeHandler struct {
	auth
}

var _ custody.Handler = ApproveChangeHandler{}

func (h ApproveChangeHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*ApproveChangeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, err := h.requireSigner(ctx, db)
	if err != nil {
		return nil, err
	}
	p, err := h.changes.Get(db, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrUpdatesAlreadyExecuted, "change %d", msg.ProposalID)
	}
	switch ok, err := h.changes.Approved(db, msg.ProposalID, caller); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(ErrAlreadyApprovedBySigner, "change %d by %s", msg.ProposalID, caller)
	}

	p.ApprovalCount++
	if err := h.changes.RecordApproval(db, msg.ProposalID, caller); err != nil {
		return nil, errors.Wrap(err, "record approval")
	}
	if err := h.changes.Save(db, msg.ProposalID, p); err != nil {
		return nil, errors.Wrap(err, "save change")
	}

	ev := custody.NewEvent(EventChangeApproved).
		With("id", formatID(msg.ProposalID)).
		With("signer", caller.String()).
		With("approvals", strconv.FormatUint(uint64(p.ApprovalCount), 10))
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}

// ExecuteChangeHandler replaces the registry with the proposed one.
//
// The quorum checked is the one of the registry at the moment of the call,
// not the one that was current when the change was proposed.
type ExecuteChangeHandler struct {
	auth
}

var _ custody.Handler = ExecuteChangeHandler{}

func (h ExecuteChangeHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*ExecuteChangeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if _, err := h.requireSigner(ctx, db); err != nil {
		return nil, err
	}
	p, err := h.changes.Get(db, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrUpdatesAlreadyExecuted, "change %d", msg.ProposalID)
	}
	reg, err := h.registry.Load(db)
	if err != nil {
		return nil, err
	}
	if p.ApprovalCount < reg.Quorum {
		return nil, newQuorumError(ErrQuorumNotMetForUpdate, reg.Quorum, p.ApprovalCount)
	}
	for i, s := range p.NewSigners {
		if s.IsZero() {
			return nil, errors.FieldIndex("NewSigners", i, ErrZeroAddressSigner, "change %d", msg.ProposalID)
		}
	}

	if err := h.registry.Replace(db, p.NewSigners, p.NewQuorum); err != nil {
		return nil, errors.Wrap(err, "replace registry")
	}
	p.Executed = true
	if err := h.changes.Save(db, msg.ProposalID, p); err != nil {
		return nil, errors.Wrap(err, "save change")
	}

	ev := custody.NewEvent(EventChangeExecuted).
		With("id", formatID(msg.ProposalID)).
		With("signers", formatAddresses(p.NewSigners)).
		With("quorum", strconv.FormatUint(uint64(p.NewQuorum), 10))
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}

// UpdateSignersHandler replaces the signers on behalf of an admin.
type UpdateSignersHandler struct {
	auth
	admins AdminChecker
}

var _ custody.Handler = UpdateSignersHandler{}

func (h UpdateSignersHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*UpdateSignersMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, err := requireAdmin(ctx, db, h.admins)
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	reg, err := h.registry.Load(db)
	if err != nil {
		return nil, err
	}
	if err := h.registry.Replace(db, msg.Signers, reg.Quorum); err != nil {
		return nil, err
	}
	return registryUpdated(msg.Signers, reg.Quorum, caller), nil
}

// UpdateQuorumHandler changes the quorum on behalf of an admin.
type UpdateQuorumHandler struct {
	auth
	admins AdminChecker
}

var _ custody.Handler = UpdateQuorumHandler{}

func (h UpdateQuorumHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*UpdateQuorumMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, err := requireAdmin(ctx, db, h.admins)
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	reg, err := h.registry.Load(db)
	if err != nil {
		return nil, err
	}
	if err := h.registry.Replace(db, reg.Signers, msg.Quorum); err != nil {
		return nil, err
	}
	return registryUpdated(reg.Signers, msg.Quorum, caller), nil
}

func requireAdmin(ctx custody.Context, db custody.ReadOnlyKVStore, admins AdminChecker) (custody.Address, error) {
	caller, ok := custody.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(ErrNotAdmin, "caller missing")
	}
	if admins == nil || !admins.IsMultisigAdmin(ctx, db, caller) {
		return nil, errors.Wrapf(ErrNotAdmin, "%s", caller)
	}
	return caller, nil
}

func registryUpdated(signers []custody.Address, quorum uint32, by custody.Address) *custody.DeliverResult {
	ev := custody.NewEvent(EventRegistryUpdated).
		With("signers", formatAddresses(signers)).
		With("quorum", strconv.FormatUint(uint64(quorum), 10)).
		With("admin", by.String())
	return &custody.DeliverResult{Events: []custody.Event{ev}}
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func formatAddresses(addrs []custody.Address) string {
	res := make([]string, len(addrs))
	for i, a := range addrs {
		res[i] = a.String()
	}
	return strings.Join(res, ",")
}
