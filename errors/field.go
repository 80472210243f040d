package errors

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Field wraps err with the name of the field that failed validation. It
// returns nil if err is nil.
//
// Use Go naming for the field name, like Recipient or Quorum. Nested fields
// use dot notation and list elements their index, starting with 0, so the
// third signer of a change is NewSigners.2. FieldIndex builds such names.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// FieldIndex is Field for the element i of a list field.
func FieldIndex(fieldName string, i int, err error, description string, args ...interface{}) error {
	return Field(fieldName+"."+strconv.Itoa(i), err, description, args...)
}

// AppendField adds the field error, if any, to errorsOrNil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Unwrap() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns all errors created for the given field name. The
// search descends into wrapped errors and groups, but stops at the first
// match of every branch.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == fieldName {
		return []error{err}
	}
	if u, ok := err.(unpacker); ok {
		var res []error
		for _, e := range u.Unpack() {
			res = append(res, FieldErrors(e, fieldName)...)
		}
		return res
	}
	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), fieldName)
	}
	return nil
}

type fielder interface {
	Field() string
}
