package errors

import (
	stdlib "errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
		"field error unwraps": {
			a:      ErrEmpty,
			b:      Field("Name", ErrEmpty, "required"),
			wantIs: true,
		},
		"appended errors are searched": {
			a:      ErrEmpty,
			b:      Append(ErrState, Wrap(ErrEmpty, "nope")),
			wantIs: true,
		},
		"appended errors without a match": {
			a:      ErrEmpty,
			b:      Append(ErrState, ErrAmount),
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct{}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestWrappedMessage(t *testing.T) {
	err := Wrapf(ErrNotFound, "proposal %d", 7)
	if got, want := err.Error(), "proposal 7: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if Cause(err) != ErrNotFound {
		t.Fatalf("unexpected cause: %v", Cause(err))
	}
	if !stdlib.Is(err, ErrNotFound) {
		t.Fatal("stdlib errors cannot unwrap")
	}
}

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrUnauthorized, "signer"),
			wantCode: ErrUnauthorized.code,
			wantLog:  "signer: unauthorized",
		},
		"stdlib error is hidden": {
			err:      fmt.Errorf("database disk is full"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"first error of a group is used": {
			err:      Append(ErrEmpty, ErrState),
			wantCode: ErrEmpty.code,
			wantLog:  "2 errors occurred:\n\t* value is empty\n\t* invalid state",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	Register(ErrNotFound.code, "again")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := run(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}
