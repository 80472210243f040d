/*
Package errors implements custom error interfaces for custody.

Reuse errors from this package whenever possible and define custom package
errors only when the kind is specific to an extension. Register a custom
error with Register(code, description) during program startup. Every error
returned to a client should wrap one of the registered errors so that its
kind can be tested with Is and its code returned by Info.

Create errors using ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of creation to ensure a stacktrace is attached. Only the first wrap records
the stacktrace.

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
