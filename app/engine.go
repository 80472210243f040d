package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/admin"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/multisig"
	"github.com/iov-one/custody/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Committer persists the state written by successful calls. The iavl
// CommitStore is one. Rollback must drop everything written to the engine
// store since the last successful Commit.
type Committer interface {
	Commit() (custody.CommitID, error)
	Rollback()
}

// Option configures an Engine.
type Option func(*Engine)

// WithCommitter makes the engine commit after every successful call.
func WithCommitter(c Committer) Option {
	return func(e *Engine) { e.committer = c }
}

// WithLogger sets the base logger of all calls.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithEventSink sets the receiver of committed events.
func WithEventSink(s custody.EventSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithPayer replaces the payment used when executing transfers. The payer
// is called with the context of the call in progress and the store of that
// call. It must not call back into the Engine: writes fail with
// errors.ErrReentrant and the read accessors wait for the lock held by the
// call. Read state through the store passed to the payer instead.
func WithPayer(p cash.Payer) Option {
	return func(e *Engine) { e.payer = p }
}

// WithAdminChecker replaces the oracle deciding who may use the admin
// rotation path.
func WithAdminChecker(c multisig.AdminChecker) Option {
	return func(e *Engine) { e.admins = c }
}

// Engine exposes every custody operation as a method. Calls are processed
// one at a time. Each call either succeeds and all its changes are written,
// or fails and leaves no trace.
type Engine struct {
	mu sync.RWMutex

	db        custody.CacheableKVStore
	committer Committer
	logger    log.Logger
	sink      custody.EventSink
	payer     cash.Payer
	admins    multisig.AdminChecker

	handler   custody.Handler
	control   cash.BaseController
	query     multisig.Querier
	adminData admin.Store
}

// NewEngine returns an engine operating on given store. Call InitChain once
// on a fresh store before using it.
func NewEngine(db custody.CacheableKVStore, opts ...Option) *Engine {
	control := cash.NewController(cash.NewBucket())
	e := &Engine{
		db:        db,
		logger:    log.NewNopLogger(),
		payer:     control,
		admins:    admin.NewChecker(),
		control:   control,
		query:     multisig.NewQuerier(control),
		adminData: admin.NewStore(),
	}
	for _, fn := range opts {
		fn(e)
	}

	r := NewRouter()
	multisig.RegisterRoutes(r, control, e.payer, e.admins)
	cash.RegisterRoutes(r, control, multisig.VaultAddress)
	admin.RegisterRoutes(r)
	e.handler = ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewReentrancyGuard(),
		utils.NewSavepoint(),
	).WithHandler(r)
	return e
}

// InitChain loads the initial registry, wallets and admins. Fails if the
// registry was already initialized.
func (e *Engine) InitChain(opts custody.Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	gen := custody.ChainInitializers(
		multisig.Initializer{},
		cash.Initializer{},
		admin.Initializer{},
	)
	cache := e.db.CacheWrap()
	if err := gen.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	if err := e.commit(); err != nil {
		return err
	}
	e.logger.Info("genesis loaded")
	return nil
}

// deliver processes a single message on behalf of the caller.
func (e *Engine) deliver(ctx context.Context, caller custody.Address, msg custody.Msg) (*custody.DeliverResult, error) {
	// Checked before taking the lock, a nested call would wait for
	// itself forever otherwise.
	if utils.InFlight(ctx) {
		return nil, errors.Wrapf(errors.ErrReentrant, "%s", msg.Path())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	callID := uuid.New().String()
	ctx = custody.WithCallID(ctx, callID)
	ctx = custody.WithLogger(ctx, e.logger)
	ctx = custody.WithCaller(ctx, caller)

	res, err := e.handler.Deliver(ctx, e.db, msg)
	if err != nil {
		return nil, err
	}
	if err := e.commit(); err != nil {
		return nil, err
	}
	e.publish(ctx, res.Events)
	return res, nil
}

// commit persists the changes of the call. If that fails, the changes are
// rolled back so that the failed call leaves no trace in the working state.
func (e *Engine) commit() error {
	if e.committer == nil {
		return nil
	}
	id, err := e.committer.Commit()
	if err != nil {
		e.committer.Rollback()
		return errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	e.logger.Debug("committed", "version", id.Version)
	return nil
}

// publish hands the events of a committed call to the sink. The state is
// already written at this point, so a failing sink cannot fail the call.
func (e *Engine) publish(ctx custody.Context, events []custody.Event) {
	if e.sink == nil || len(events) == 0 {
		return
	}
	if err := e.sink.Publish(ctx, events); err != nil {
		custody.GetLogger(ctx).Error("cannot publish events",
			"call", custody.GetCallID(ctx), "err", err)
	}
}

func decodeID(res *custody.DeliverResult) (uint64, error) {
	return orm.DecodeSequence(res.Data)
}

// ProposeTransfer creates a proposal to pay amount from the vault to the
// recipient and returns its id.
func (e *Engine) ProposeTransfer(ctx context.Context, caller, to custody.Address, amount uint64) (uint64, error) {
	res, err := e.deliver(ctx, caller, &multisig.ProposeTransferMsg{Recipient: to, Amount: amount})
	if err != nil {
		return 0, err
	}
	return decodeID(res)
}

// ApproveTransfer adds the approval of the caller to a transfer proposal.
func (e *Engine) ApproveTransfer(ctx context.Context, caller custody.Address, id uint64) error {
	_, err := e.deliver(ctx, caller, &multisig.ApproveTransferMsg{ProposalID: id})
	return err
}

// ExecuteTransfer pays out a transfer proposal that reached the quorum.
func (e *Engine) ExecuteTransfer(ctx context.Context, caller custody.Address, id uint64) error {
	_, err := e.deliver(ctx, caller, &multisig.ExecuteTransferMsg{ProposalID: id})
	return err
}

// ProposeSignerQuorumChange creates a proposal to replace the signers and
// the quorum and returns its id.
func (e *Engine) ProposeSignerQuorumChange(ctx context.Context, caller custody.Address, signers []custody.Address, quorum uint32) (uint64, error) {
	res, err := e.deliver(ctx, caller, &multisig.ProposeChangeMsg{NewSigners: signers, NewQuorum: quorum})
	if err != nil {
		return 0, err
	}
	return decodeID(res)
}

// ApproveSignerQuorumChange adds the approval of the caller to a change
// proposal.
func (e *Engine) ApproveSignerQuorumChange(ctx context.Context, caller custody.Address, id uint64) error {
	_, err := e.deliver(ctx, caller, &multisig.ApproveChangeMsg{ProposalID: id})
	return err
}

// ExecuteSignerQuorumChange replaces the registry with the one of a change
// proposal that reached the quorum.
func (e *Engine) ExecuteSignerQuorumChange(ctx context.Context, caller custody.Address, id uint64) error {
	_, err := e.deliver(ctx, caller, &multisig.ExecuteChangeMsg{ProposalID: id})
	return err
}

// UpdateSigners replaces the signers without a proposal. Admin only.
func (e *Engine) UpdateSigners(ctx context.Context, caller custody.Address, signers []custody.Address) error {
	_, err := e.deliver(ctx, caller, &multisig.UpdateSignersMsg{Signers: signers})
	return err
}

// UpdateQuorum replaces the quorum without a proposal. Admin only.
func (e *Engine) UpdateQuorum(ctx context.Context, caller custody.Address, quorum uint32) error {
	_, err := e.deliver(ctx, caller, &multisig.UpdateQuorumMsg{Quorum: quorum})
	return err
}

// GrantAdmin gives the admin capability to an address. Super admin only.
func (e *Engine) GrantAdmin(ctx context.Context, caller, addr custody.Address) error {
	_, err := e.deliver(ctx, caller, &admin.GrantMsg{Address: addr})
	return err
}

// RevokeAdmin takes the admin capability away. Super admin only.
func (e *Engine) RevokeAdmin(ctx context.Context, caller, addr custody.Address) error {
	_, err := e.deliver(ctx, caller, &admin.RevokeMsg{Address: addr})
	return err
}

// Deposit moves amount from the caller wallet into the vault.
func (e *Engine) Deposit(ctx context.Context, caller custody.Address, amount uint64) error {
	_, err := e.deliver(ctx, caller, &cash.DepositMsg{Amount: amount})
	return err
}

// The accessors below read the state left by the last completed call.

// Transfer returns the transfer proposal with given id.
func (e *Engine) Transfer(id uint64) (*multisig.TransferProposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.Transfer(e.db, id)
}

// TransferApproved returns true if the signer approved the transfer.
func (e *Engine) TransferApproved(id uint64, signer custody.Address) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.TransferApproved(e.db, id, signer)
}

// Change returns the change proposal with given id.
func (e *Engine) Change(id uint64) (*multisig.ChangeProposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.Change(e.db, id)
}

// ChangeApproved returns true if the signer approved the change.
func (e *Engine) ChangeApproved(id uint64, signer custody.Address) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.ChangeApproved(e.db, id, signer)
}

// TransferCount returns the number of transfer proposals created.
func (e *Engine) TransferCount() (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.TransferCount(e.db)
}

// ChangeCount returns the number of change proposals created.
func (e *Engine) ChangeCount() (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.ChangeCount(e.db)
}

// Signers returns the current signers in order.
func (e *Engine) Signers() ([]custody.Address, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.Signers(e.db)
}

// IsSigner returns true if the address is a current signer.
func (e *Engine) IsSigner(addr custody.Address) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.IsSigner(e.db, addr)
}

// Quorum returns the number of approvals currently required.
func (e *Engine) Quorum() (uint32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.Quorum(e.db)
}

// HeldBalance returns the value held in the vault.
func (e *Engine) HeldBalance() (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.HeldBalance(e.db)
}

// Balance returns the value held by any wallet.
func (e *Engine) Balance(addr custody.Address) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.control.Balance(e.db, addr)
}

// IsAdmin returns true if the address may use the admin rotation path.
func (e *Engine) IsAdmin(addr custody.Address) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.adminData.IsAdmin(e.db, addr)
}
