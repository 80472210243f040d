package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathProposeTransfer = "multisig/propose_transfer"
	pathApproveTransfer = "multisig/approve_transfer"
	pathExecuteTransfer = "multisig/execute_transfer"
	pathProposeChange   = "multisig/propose_change"
	pathApproveChange   = "multisig/approve_change"
	pathExecuteChange   = "multisig/execute_change"
	pathUpdateSigners   = "multisig/update_signers"
	pathUpdateQuorum    = "multisig/update_quorum"
)

var (
	_ custody.Msg = (*ProposeTransferMsg)(nil)
	_ custody.Msg = (*ApproveTransferMsg)(nil)
	_ custody.Msg = (*ExecuteTransferMsg)(nil)
	_ custody.Msg = (*ProposeChangeMsg)(nil)
	_ custody.Msg = (*ApproveChangeMsg)(nil)
	_ custody.Msg = (*ExecuteChangeMsg)(nil)
	_ custody.Msg = (*UpdateSignersMsg)(nil)
	_ custody.Msg = (*UpdateQuorumMsg)(nil)
)

// ProposeTransferMsg asks to pay Amount from the vault to Recipient.
type ProposeTransferMsg struct {
	Recipient custody.Address
	Amount    uint64
}

func (ProposeTransferMsg) Path() string {
	return pathProposeTransfer
}

func (m *ProposeTransferMsg) Validate() error {
	var errs error
	if m.Recipient.IsZero() {
		errs = errors.AppendField(errs, "Recipient", ErrZeroRecipient)
	} else {
		errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	}
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", ErrZeroAmount)
	}
	return errs
}

// ApproveTransferMsg approves the transfer proposal with given id.
type ApproveTransferMsg struct {
	ProposalID uint64
}

func (ApproveTransferMsg) Path() string {
	return pathApproveTransfer
}

// Validate passes, any id is well formed.
func (m *ApproveTransferMsg) Validate() error {
	return nil
}

// ExecuteTransferMsg pays out the transfer proposal with given id.
type ExecuteTransferMsg struct {
	ProposalID uint64
}

func (ExecuteTransferMsg) Path() string {
	return pathExecuteTransfer
}

// Validate passes, any id is well formed.
func (m *ExecuteTransferMsg) Validate() error {
	return nil
}

// ProposeChangeMsg asks to replace the registry. The quorum is checked
// against the proposed signers, not the current ones.
type ProposeChangeMsg struct {
	NewSigners []custody.Address
	NewQuorum  uint32
}

func (ProposeChangeMsg) Path() string {
	return pathProposeChange
}

func (m *ProposeChangeMsg) Validate() error {
	return ValidateSigners(m.NewSigners, m.NewQuorum)
}

// ApproveChangeMsg approves the change proposal with given id.
type ApproveChangeMsg struct {
	ProposalID uint64
}

func (ApproveChangeMsg) Path() string {
	return pathApproveChange
}

// Validate passes, any id is well formed.
func (m *ApproveChangeMsg) Validate() error {
	return nil
}

// ExecuteChangeMsg applies the change proposal with given id.
type ExecuteChangeMsg struct {
	ProposalID uint64
}

func (ExecuteChangeMsg) Path() string {
	return pathExecuteChange
}

// Validate passes, any id is well formed.
func (m *ExecuteChangeMsg) Validate() error {
	return nil
}

// UpdateSignersMsg replaces the signers without a proposal, keeping the
// current quorum. Admin only.
type UpdateSignersMsg struct {
	Signers []custody.Address
}

func (UpdateSignersMsg) Path() string {
	return pathUpdateSigners
}

// Validate checks the list alone. Whether the current quorum fits is only
// known when the message is applied.
func (m *UpdateSignersMsg) Validate() error {
	return ValidateSigners(m.Signers, 1)
}

// UpdateQuorumMsg replaces the quorum without a proposal. Admin only.
type UpdateQuorumMsg struct {
	Quorum uint32
}

func (UpdateQuorumMsg) Path() string {
	return pathUpdateQuorum
}

func (m *UpdateQuorumMsg) Validate() error {
	if m.Quorum == 0 {
		return errors.Field("Quorum", ErrZeroQuorum, "at least one approval required")
	}
	return nil
}
