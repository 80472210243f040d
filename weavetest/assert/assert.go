/*
Package assert provides the assertions used by custody tests. Every helper
stops the test on the first failure.
*/
package assert

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Tester is the subset of testing.TB used by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Nil fails the test if given value is not nil. Typed nil pointers, slices
// and maps count as nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of custody errors
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError ensures that err holds exactly one error for the field and
// that it is of the wanted kind. Use nil as want to ensure the field has no
// error at all.
func FieldError(t Tester, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	switch {
	case want == nil && len(errs) == 0:
		return
	case want == nil:
		logAll(t, errs)
		t.Fatalf("want no error for %q, got %d", fieldName, len(errs))
	case len(errs) == 0:
		t.Fatalf("no error found for %q", fieldName)
	case len(errs) > 1:
		logAll(t, errs)
		t.Fatalf("want one error for %q, got %d", fieldName, len(errs))
	case !want.Is(errs[0]):
		t.Fatalf("want %q for %q, got %q", want, fieldName, errs[0])
	}
}

func logAll(t Tester, errs []error) {
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}

// IsErr fails the test unless got is of the kind of want. Two nil errors
// match.
func IsErr(t Tester, want, got error) {
	t.Helper()

	if want == got {
		return
	}
	type comparator interface {
		Is(error) bool
	}
	if want, ok := want.(comparator); ok && want.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// Event fails the test unless events holds exactly one event. It must be of
// the wanted type and carry every attribute given as key, value pairs.
func Event(t Tester, events []custody.Event, wantType string, attrs ...string) {
	t.Helper()

	if len(attrs)%2 != 0 {
		t.Fatalf("attributes must be key value pairs, got %d values", len(attrs))
		return
	}
	if len(events) != 1 {
		t.Fatalf("want one %q event, got %d", wantType, len(events))
		return
	}
	ev := events[0]
	if ev.Type != wantType {
		t.Fatalf("want %q event, got %q", wantType, ev.Type)
		return
	}
	for i := 0; i < len(attrs); i += 2 {
		key, want := attrs[i], attrs[i+1]
		got, ok := ev.Attr(key)
		if !ok {
			t.Fatalf("%q event has no %q attribute", wantType, key)
		} else if got != want {
			t.Fatalf("%q event attribute %q: want %q, got %q", wantType, key, want, got)
		}
	}
}
