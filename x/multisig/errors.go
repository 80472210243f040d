package multisig

import (
	"fmt"

	"github.com/iov-one/custody/errors"
)

// multisig takes 1100-1129
var (
	ErrEmptySignerSet           = errors.Register(1100, "empty signer set")
	ErrZeroQuorum               = errors.Register(1101, "zero quorum")
	ErrQuorumExceedsSignerCount = errors.Register(1102, "quorum exceeds signer count")
	ErrZeroAddressSigner        = errors.Register(1103, "zero address signer")
	ErrDuplicateSigner          = errors.Register(1104, "duplicate signer")
	ErrNotASigner               = errors.Register(1105, "not a signer")
	ErrZeroRecipient            = errors.Register(1106, "zero recipient")
	ErrZeroAmount               = errors.Register(1107, "zero amount")
	ErrNoFundsHeld              = errors.Register(1108, "no funds held")
	ErrInvalidProposalID        = errors.Register(1109, "invalid proposal id")
	ErrProposalAlreadyExecuted  = errors.Register(1110, "proposal already executed")
	ErrAlreadyApproved          = errors.Register(1111, "already approved")
	ErrQuorumNotMet             = errors.Register(1112, "quorum not met")
	ErrInsufficientHeldBalance  = errors.Register(1113, "insufficient held balance")
	ErrPaymentFailed            = errors.Register(1114, "payment failed")
	ErrAlreadyApprovedBySigner  = errors.Register(1115, "already approved by signer")
	ErrUpdatesAlreadyExecuted   = errors.Register(1116, "updates already executed")
	ErrQuorumNotMetForUpdate    = errors.Register(1117, "quorum not met for update")
	ErrNotAdmin                 = errors.Register(1118, "not an admin")
)

// QuorumError is returned when a proposal does not have enough approvals to
// be executed. Its cause is either ErrQuorumNotMet or
// ErrQuorumNotMetForUpdate.
type QuorumError struct {
	kind     *errors.Error
	Required uint32
	Current  uint32
}

func newQuorumError(kind *errors.Error, required, current uint32) error {
	return errors.Wrapf(&QuorumError{kind: kind, Required: required, Current: current}, "proposal")
}

func (e *QuorumError) Error() string {
	return fmt.Sprintf("%s: required %d, current %d", e.kind, e.Required, e.Current)
}

func (e *QuorumError) Cause() error {
	return e.kind
}

func (e *QuorumError) Unwrap() error {
	return e.kind
}

// BalanceError is returned when the vault holds less than a transfer
// requests. Its cause is ErrInsufficientHeldBalance.
type BalanceError struct {
	Held      uint64
	Requested uint64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%s: held %d, requested %d", ErrInsufficientHeldBalance, e.Held, e.Requested)
}

func (e *BalanceError) Cause() error {
	return ErrInsufficientHeldBalance
}

func (e *BalanceError) Unwrap() error {
	return ErrInsufficientHeldBalance
}
