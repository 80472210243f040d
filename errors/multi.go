package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. If only one non-nil error
// is given, it is returned unchanged.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiError); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiError is a flat list of errors. It is always created using Append.
type multiError []error

var _ unpacker = (multiError)(nil)

func (e multiError) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(e), strings.Join(msgs, "\n\t"))
}

// Unpack returns all errors that this error groups.
func (e multiError) Unpack() []error {
	return []error(e)
}

// Code returns the code of the first error, consistent with the fail fast
// approach.
func (e multiError) Code() uint32 {
	return code(e[0])
}

type unpacker interface {
	Unpack() []error
}
