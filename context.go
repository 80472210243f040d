package custody

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the custody module

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
	contextKeyCallID
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithCaller sets the address of the account that issued the current call.
func WithCaller(ctx Context, caller Address) Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the address of the account that issued the current
// call. Returns false if no caller was set.
func GetCaller(ctx Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	if !ok || len(val) == 0 {
		return nil, false
	}
	return val, true
}

// WithCallID sets the identifier correlating logs and events of one call.
func WithCallID(ctx Context, id string) Context {
	return context.WithValue(ctx, contextKeyCallID, id)
}

// GetCallID returns the identifier of the current call or an empty string.
func GetCallID(ctx Context) string {
	val, _ := ctx.Value(contextKeyCallID).(string)
	return val
}
