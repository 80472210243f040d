package orm

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest/assert"
)

type sample struct {
	Count uint64
	Small uint32
	Flag  bool
	Data  []byte
	List  [][]byte
}

func (s *sample) encode() ([]byte, error) {
	e := NewEncoder()
	e.Uint64(1, s.Count)
	e.Uint32(2, s.Small)
	e.Bool(3, s.Flag)
	e.Bytes(4, s.Data)
	for _, v := range s.List {
		e.Element(5, v)
	}
	return e.Result()
}

func (s *sample) decode(raw []byte) error {
	*s = sample{}
	d := NewDecoder(raw)
	for d.Next() {
		switch d.Field() {
		case 1:
			s.Count = d.Uint64()
		case 2:
			s.Small = d.Uint32()
		case 3:
			s.Flag = d.Bool()
		case 4:
			s.Data = d.Bytes()
		case 5:
			s.List = append(s.List, d.Bytes())
		default:
			d.Skip()
		}
	}
	return d.Err()
}

func TestCodec(t *testing.T) {
	cases := map[string]sample{
		"empty":  {},
		"scalar": {Count: 1 << 40, Small: 300, Flag: true},
		"bytes":  {Data: []byte("hello"), List: [][]byte{[]byte("a"), {}, []byte("c")}},
	}
	for testName, want := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := want.encode()
			assert.Nil(t, err)
			var got sample
			assert.Nil(t, got.decode(raw))
			assert.Equal(t, want.Count, got.Count)
			assert.Equal(t, want.Small, got.Small)
			assert.Equal(t, want.Flag, got.Flag)
			assert.Equal(t, len(want.Data), len(got.Data))
			assert.Equal(t, len(want.List), len(got.List))
			for i := range want.List {
				assert.Equal(t, string(want.List[i]), string(got.List[i]))
			}
		})
	}
}

func TestCodecKnownEncoding(t *testing.T) {
	// field 1 varint 150 is the classic protobuf example
	raw, err := (&sample{Count: 150}).encode()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x08, 0x96, 0x01}, raw)
}

func TestDecoderSkipsUnknownFields(t *testing.T) {
	e := NewEncoder()
	e.Uint64(1, 7)
	e.Bytes(9, []byte("future"))
	e.Uint64(10, 3)
	raw, err := e.Result()
	assert.Nil(t, err)

	var got sample
	assert.Nil(t, got.decode(raw))
	assert.Equal(t, uint64(7), got.Count)
}

func TestDecoderRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"truncated bytes":  {0x22, 0x05, 'a'},
		"wrong wire type":  {0x0a, 0x01, 'a'},
		"truncated varint": {0x08, 0x96},
		"zero field":       {0x00, 0x01},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var got sample
			assert.IsErr(t, errors.ErrModel, got.decode(raw))
		})
	}
}
