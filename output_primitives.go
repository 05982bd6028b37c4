package wire

import (
	"math"

	"github.com/chaisql/wire/internal/encoding"
	"github.com/cockroachdb/errors"
)

// WriteByte writes one byte. It implements io.ByteWriter.
func (o *Output) WriteByte(c byte) error {
	if o.position == len(o.bytes) {
		if err := o.require(1); err != nil {
			return err
		}
	}
	o.bytes[o.position] = c
	o.position++
	return nil
}

func (o *Output) WriteUint8(v uint8) error {
	return o.WriteByte(v)
}

func (o *Output) WriteInt8(v int8) error {
	return o.WriteByte(byte(v))
}

// WriteBool writes 1 for true and 0 for false.
func (o *Output) WriteBool(v bool) error {
	if v {
		return o.WriteByte(1)
	}
	return o.WriteByte(0)
}

func (o *Output) WriteUint16(v uint16) error {
	if err := o.require(2); err != nil {
		return err
	}
	o.codec.PutUint16(o.bytes[o.position:], v)
	o.position += 2
	return nil
}

func (o *Output) WriteInt16(v int16) error {
	return o.WriteUint16(uint16(v))
}

func (o *Output) WriteUint32(v uint32) error {
	if err := o.require(4); err != nil {
		return err
	}
	o.codec.PutUint32(o.bytes[o.position:], v)
	o.position += 4
	return nil
}

func (o *Output) WriteInt32(v int32) error {
	return o.WriteUint32(uint32(v))
}

func (o *Output) WriteUint64(v uint64) error {
	if err := o.require(8); err != nil {
		return err
	}
	o.codec.PutUint64(o.bytes[o.position:], v)
	o.position += 8
	return nil
}

func (o *Output) WriteInt64(v int64) error {
	return o.WriteUint64(uint64(v))
}

func (o *Output) WriteFloat32(v float32) error {
	return o.WriteUint32(math.Float32bits(v))
}

func (o *Output) WriteFloat64(v float64) error {
	return o.WriteUint64(math.Float64bits(v))
}

// WriteIntN writes the n low bytes of v, least significant first,
// whatever the codec. n must be between 1 and 4.
func (o *Output) WriteIntN(v int32, n int) error {
	if n < 1 || n > 4 {
		return errors.Newf("invalid integer size: %d", n)
	}
	if err := o.require(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		o.bytes[o.position+i] = byte(v >> (8 * i))
	}
	o.position += n
	return nil
}

// VarInt32Len returns the number of bytes WriteVarInt32 uses for v.
func VarInt32Len(v int32, optimizePositive bool) int {
	if !optimizePositive {
		return encoding.Uvarint32Len(encoding.ZigZag32(v))
	}
	return encoding.Uvarint32Len(uint32(v))
}

// VarInt64Len returns the number of bytes WriteVarInt64 uses for v.
func VarInt64Len(v int64, optimizePositive bool) int {
	if !optimizePositive {
		return encoding.Uvarint64Len(encoding.ZigZag64(v))
	}
	return encoding.Uvarint64Len(uint64(v))
}

// WriteVarInt32 writes v in 1 to 5 bytes and returns the number of bytes
// written. If optimizePositive is false, v is zig-zag encoded first so
// that small negative values stay short.
func (o *Output) WriteVarInt32(v int32, optimizePositive bool) (int, error) {
	u := uint32(v)
	if !optimizePositive {
		u = encoding.ZigZag32(v)
	}
	n := encoding.Uvarint32Len(u)
	if err := o.require(n); err != nil {
		return 0, err
	}
	encoding.PutUvarint32(o.bytes[o.position:], u)
	o.position += n
	return n, nil
}

// WriteVarInt64 writes v in 1 to 9 bytes and returns the number of bytes
// written.
func (o *Output) WriteVarInt64(v int64, optimizePositive bool) (int, error) {
	u := uint64(v)
	if !optimizePositive {
		u = encoding.ZigZag64(v)
	}
	n := encoding.Uvarint64Len(u)
	if err := o.require(n); err != nil {
		return 0, err
	}
	encoding.PutUvarint64(o.bytes[o.position:], u)
	o.position += n
	return n, nil
}

// WriteCompactInt32 writes v as a varint, or as a fixed 4 byte integer if
// the Output was created with FixedLength.
func (o *Output) WriteCompactInt32(v int32, optimizePositive bool) (int, error) {
	if o.fixedLength {
		return 4, o.WriteInt32(v)
	}
	return o.WriteVarInt32(v, optimizePositive)
}

// WriteCompactInt64 is the 64-bit counterpart of WriteCompactInt32.
func (o *Output) WriteCompactInt64(v int64, optimizePositive bool) (int, error) {
	if o.fixedLength {
		return 8, o.WriteInt64(v)
	}
	return o.WriteVarInt64(v, optimizePositive)
}

// WriteVarInt32Flag writes a flag bit and v in 1 to 5 bytes. The flag can
// be read back with ReadVarInt32Flag before the value.
func (o *Output) WriteVarInt32Flag(flag bool, v int32, optimizePositive bool) (int, error) {
	u := uint32(v)
	if !optimizePositive {
		u = encoding.ZigZag32(v)
	}
	return o.writeUvarint32Flag(flag, u)
}

func (o *Output) writeUvarint32Flag(flag bool, u uint32) (int, error) {
	n := encoding.Uvarint32FlagLen(u)
	if err := o.require(n); err != nil {
		return 0, err
	}
	encoding.PutUvarint32Flag(o.bytes[o.position:], flag, u)
	o.position += n
	return n, nil
}

// WriteVarFloat32 writes v multiplied by precision and truncated, as a
// varint. Values whose product does not fit an int32 are not supported.
func (o *Output) WriteVarFloat32(v, precision float32, optimizePositive bool) (int, error) {
	return o.WriteVarInt32(int32(v*precision), optimizePositive)
}

// WriteVarFloat64 writes v multiplied by precision and truncated, as a
// varint.
func (o *Output) WriteVarFloat64(v, precision float64, optimizePositive bool) (int, error) {
	return o.WriteVarInt64(int64(v*precision), optimizePositive)
}
