package orm

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Protobuf wire types used by models.
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

// Encoder writes model fields in the protobuf wire format. Fields holding
// the zero value are omitted, as proto3 does.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) varint(v uint64) {
	if e.err == nil {
		e.err = e.buf.EncodeVarint(v)
	}
}

func (e *Encoder) tag(field int, wire uint64) {
	e.varint(uint64(field)<<3 | wire)
}

// Uint64 writes a varint field.
func (e *Encoder) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.tag(field, wireVarint)
	e.varint(v)
}

// Uint32 writes a varint field.
func (e *Encoder) Uint32(field int, v uint32) {
	e.Uint64(field, uint64(v))
}

// Bool writes a varint field.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.Uint64(field, 1)
	}
}

// Bytes writes a length delimited field.
func (e *Encoder) Bytes(field int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.Element(field, v)
}

// Element writes one element of a repeated bytes field. Unlike Bytes, an
// empty value is written so that elements keep their position.
func (e *Encoder) Element(field int, v []byte) {
	e.tag(field, wireBytes)
	if e.err == nil {
		e.err = e.buf.EncodeRawBytes(v)
	}
}

// Result returns the encoded message.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, errors.Wrap(errors.ErrModel, e.err.Error())
	}
	return e.buf.Bytes(), nil
}

// Decoder reads model fields in the protobuf wire format.
//
//   d := NewDecoder(raw)
//   for d.Next() {
//       switch d.Field() {
//       case 1:
//           m.Count = d.Uint64()
//       default:
//           d.Skip()
//       }
//   }
//   return d.Err()
type Decoder struct {
	buf   *proto.Buffer
	left  int
	field int
	wire  uint64
	err   error
}

// NewDecoder returns a decoder reading given message.
func NewDecoder(raw []byte) *Decoder {
	return &Decoder{buf: proto.NewBuffer(raw), left: len(raw)}
}

// Next moves to the next field. It returns false at the end of the message
// or on the first failure.
func (d *Decoder) Next() bool {
	if d.err != nil || d.left <= 0 {
		return false
	}
	key := d.varint()
	if d.err != nil {
		return false
	}
	d.field = int(key >> 3)
	d.wire = key & 7
	if d.field == 0 {
		d.fail("field number zero")
		return false
	}
	return true
}

// Field returns the number of the current field.
func (d *Decoder) Field() int {
	return d.field
}

func (d *Decoder) varint() uint64 {
	v, err := d.buf.DecodeVarint()
	if err != nil {
		d.fail(err.Error())
		return 0
	}
	d.left -= proto.SizeVarint(v)
	return v
}

func (d *Decoder) expect(wire uint64) bool {
	if d.err != nil {
		return false
	}
	if d.wire != wire {
		d.fail("unexpected wire type")
		return false
	}
	return true
}

// Uint64 reads a varint field.
func (d *Decoder) Uint64() uint64 {
	if !d.expect(wireVarint) {
		return 0
	}
	return d.varint()
}

// Uint32 reads a varint field, failing if the value does not fit.
func (d *Decoder) Uint32() uint32 {
	v := d.Uint64()
	if v > 1<<32-1 {
		d.fail("uint32 overflow")
		return 0
	}
	return uint32(v)
}

// Bool reads a varint field.
func (d *Decoder) Bool() bool {
	return d.Uint64() != 0
}

// Bytes reads a length delimited field. The returned slice is a copy.
func (d *Decoder) Bytes() []byte {
	if !d.expect(wireBytes) {
		return nil
	}
	return d.raw()
}

func (d *Decoder) raw() []byte {
	v, err := d.buf.DecodeRawBytes(true)
	if err != nil {
		d.fail(err.Error())
		return nil
	}
	d.left -= proto.SizeVarint(uint64(len(v))) + len(v)
	return v
}

// Skip ignores the current field. Unknown fields are skipped so that older
// code can read newer models.
func (d *Decoder) Skip() {
	if d.err != nil {
		return
	}
	switch d.wire {
	case wireVarint:
		d.varint()
	case wireBytes:
		d.raw()
	case wireFixed64:
		if _, err := d.buf.DecodeFixed64(); err != nil {
			d.fail(err.Error())
		}
		d.left -= 8
	case wireFixed32:
		if _, err := d.buf.DecodeFixed32(); err != nil {
			d.fail(err.Error())
		}
		d.left -= 4
	default:
		d.fail("unsupported wire type")
	}
}

func (d *Decoder) fail(msg string) {
	if d.err == nil {
		d.err = errors.Wrapf(errors.ErrModel, "field %d: %s", d.field, msg)
	}
}

// Err returns the first decoding failure.
func (d *Decoder) Err() error {
	if d.err == nil && d.left < 0 {
		return errors.Wrap(errors.ErrModel, "truncated message")
	}
	return d.err
}
