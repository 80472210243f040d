package custody

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody/errors"
)

func TestAddressIsZero(t *testing.T) {
	cases := map[string]struct {
		addr Address
		want bool
	}{
		"nil":          {addr: nil, want: true},
		"empty":        {addr: Address{}, want: true},
		"all zeros":    {addr: make(Address, AddressLength), want: true},
		"hashed":       {addr: NewAddress([]byte("alice")), want: false},
		"last byte on": {addr: append(make(Address, AddressLength-1), 1), want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.addr.IsZero(); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	addr := NewAddress([]byte("alice"))
	b32, err := addr.Bech32("cstd")
	if err != nil {
		t.Fatalf("cannot encode bech32: %s", err)
	}

	cases := map[string]struct {
		enc     string
		want    Address
		wantErr *errors.Error
	}{
		"plain hex": {
			enc:  addr.String(),
			want: addr,
		},
		"prefixed hex": {
			enc:  "hex:" + addr.String(),
			want: addr,
		},
		"bech32": {
			enc:  "bech32:" + b32,
			want: addr,
		},
		"too short": {
			enc:     "hex:AABB",
			wantErr: errors.ErrInput,
		},
		"not hex": {
			enc:     "zz",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "base64:QUJD",
			wantErr: errors.ErrType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
			if !tc.want.Equals(got) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	type holder struct {
		Addr Address `json:"addr"`
	}
	in := holder{Addr: NewAddress([]byte("bob"))}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var out holder
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if !in.Addr.Equals(out.Addr) {
		t.Fatalf("want %s, got %s", in.Addr, out.Addr)
	}
}
