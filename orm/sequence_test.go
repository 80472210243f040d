package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	cases := []struct {
		bucket     string
		name       string
		increments uint64
	}{
		0: {"a", "id", 22},
		1: {"b", "id", 11},
		2: {"a", "other", 1},
		3: {"c", "id", 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			db := store.MemStore()
			s := NewSequence(tc.bucket, tc.name)

			first, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), first)

			var prev []byte
			var val uint64
			for i := uint64(0); i < tc.increments; i++ {
				raw, err := s.NextVal(db)
				require.NoError(t, err)
				// encoded values must sort as the numbers do
				assert.Equal(t, 1, bytes.Compare(raw, prev))
				prev = raw
				val, err = DecodeSequence(raw)
				require.NoError(t, err)
			}
			assert.Equal(t, tc.increments, val)

			latest, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, tc.increments, latest)
		})
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("transfer", "id")
	b := NewSequence("change", "id")

	_, err := a.NextInt(db)
	require.NoError(t, err)
	n, err := a.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	n, err = b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestDecodeSequenceRejectsBadLength(t *testing.T) {
	_, err := DecodeSequence([]byte{1, 2, 3})
	assert.True(t, ErrInvalidIndex.Is(err))
}
