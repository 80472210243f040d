package weavetest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/custody"
)

var addressSeq uint64

// NewAddress returns a new address, unique within the process.
func NewAddress() custody.Address {
	n := atomic.AddUint64(&addressSeq, 1)
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], n)
	return custody.NewAddress(append([]byte("weavetest/"), seed[:]...))
}

// NewAddresses returns n unique addresses.
func NewAddresses(n int) []custody.Address {
	res := make([]custody.Address, n)
	for i := range res {
		res[i] = NewAddress()
	}
	return res
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// custody.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceID returns an encoded value of the sequence number, as returned by
// orm.Sequence
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
