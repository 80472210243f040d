package cash

import (
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// EventDeposited is emitted when value is moved into the vault.
const EventDeposited = "cash/deposited"

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, control Controller, vault custody.Address) {
	r.Handle(DepositMsg{}.Path(), NewDepositHandler(control, vault))
}

// DepositHandler moves coins from the caller to the vault.
type DepositHandler struct {
	control Controller
	vault   custody.Address
}

var _ custody.Handler = DepositHandler{}

// NewDepositHandler creates a handler for DepositMsg
func NewDepositHandler(control Controller, vault custody.Address) DepositHandler {
	return DepositHandler{
		control: control,
		vault:   vault,
	}
}

// Deliver moves the tokens from the caller to the vault if
// all preconditions are met
func (h DepositHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*DepositMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	caller, ok := custody.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller missing")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, caller, h.vault, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	ev := custody.NewEvent(EventDeposited).
		With("from", caller.String()).
		With("amount", strconv.FormatUint(msg.Amount, 10))
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}
