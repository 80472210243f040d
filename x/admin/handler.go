package admin

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	EventGranted = "admin/granted"
	EventRevoked = "admin/revoked"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry) {
	s := NewStore()
	r.Handle(GrantMsg{}.Path(), grantHandler{store: s})
	r.Handle(RevokeMsg{}.Path(), revokeHandler{store: s})
}

// requireSuperAdmin returns an error unless the current caller is the
// configured super admin.
func requireSuperAdmin(ctx custody.Context, db custody.ReadOnlyKVStore, s Store) error {
	caller, ok := custody.GetCaller(ctx)
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "caller missing")
	}
	super, err := s.SuperAdmin(db)
	if err != nil {
		return err
	}
	if !super.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "super admin only")
	}
	return nil
}

type grantHandler struct {
	store Store
}

func (h grantHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*GrantMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := requireSuperAdmin(ctx, db, h.store); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	switch ok, err := h.store.IsAdmin(db, msg.Address); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "%s is already an admin", msg.Address)
	}
	if err := h.store.grant(db, msg.Address); err != nil {
		return nil, errors.Wrap(err, "grant")
	}
	ev := custody.NewEvent(EventGranted).With("address", msg.Address.String())
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}

type revokeHandler struct {
	store Store
}

func (h revokeHandler) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	msg, ok := m.(*RevokeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := requireSuperAdmin(ctx, db, h.store); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := h.store.revoke(db, msg.Address); err != nil {
		return nil, errors.Wrapf(err, "revoke %s", msg.Address)
	}
	ev := custody.NewEvent(EventRevoked).With("address", msg.Address.String())
	return &custody.DeliverResult{Events: []custody.Event{ev}}, nil
}
