package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// isPath is the gatekeeper for paths. Only lower case characters, digits,
// underscore and the slash separating an extension name are allowed.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatch messages to them by calling Deliver.
type Router struct {
	routes map[string]custody.Handler
}

var _ custody.Registry = (*Router)(nil)
var _ custody.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]custody.Handler, 16),
	}
}

// Handle registers a handler for the given path. It panics if the path is
// already taken or malformed.
func (r *Router) Handle(path string, h custody.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the handler registered for the path or a handler that
// always fails if there is none.
func (r *Router) handler(m custody.Msg) custody.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Deliver dispatches the message to the handler registered for its path.
func (r *Router) Deliver(ctx custody.Context, db custody.KVStore, m custody.Msg) (*custody.DeliverResult, error) {
	return r.handler(m).Deliver(ctx, db, m)
}

func notFoundHandler(path string) custody.Handler {
	return custody.HandlerFunc(func(custody.Context, custody.KVStore, custody.Msg) (*custody.DeliverResult, error) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
	})
}
