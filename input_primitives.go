package wire

import (
	"io"
	"math"

	"github.com/chaisql/wire/internal/encoding"
	"github.com/cockroachdb/errors"
)

// ReadByte reads one byte. Unlike the other read methods, it returns
// io.EOF at the end of data.
func (in *Input) ReadByte() (byte, error) {
	if in.position == in.limit {
		n, err := in.optional(1)
		if err != nil {
			return 0, err
		}
		if n <= 0 {
			return 0, io.EOF
		}
	}
	b := in.bytes[in.position]
	in.position++
	return b, nil
}

func (in *Input) ReadUint8() (uint8, error) {
	if in.position == in.limit {
		if _, err := in.require(1); err != nil {
			return 0, err
		}
	}
	b := in.bytes[in.position]
	in.position++
	return b, nil
}

func (in *Input) ReadInt8() (int8, error) {
	b, err := in.ReadUint8()
	return int8(b), err
}

// ReadBool reads one byte. Only 1 reads as true.
func (in *Input) ReadBool() (bool, error) {
	b, err := in.ReadUint8()
	return b == 1, err
}

func (in *Input) ReadUint16() (uint16, error) {
	if _, err := in.require(2); err != nil {
		return 0, err
	}
	v := in.codec.Uint16(in.bytes[in.position:])
	in.position += 2
	return v, nil
}

func (in *Input) ReadInt16() (int16, error) {
	v, err := in.ReadUint16()
	return int16(v), err
}

func (in *Input) ReadUint32() (uint32, error) {
	if _, err := in.require(4); err != nil {
		return 0, err
	}
	v := in.codec.Uint32(in.bytes[in.position:])
	in.position += 4
	return v, nil
}

func (in *Input) ReadInt32() (int32, error) {
	v, err := in.ReadUint32()
	return int32(v), err
}

func (in *Input) ReadUint64() (uint64, error) {
	if _, err := in.require(8); err != nil {
		return 0, err
	}
	v := in.codec.Uint64(in.bytes[in.position:])
	in.position += 8
	return v, nil
}

func (in *Input) ReadInt64() (int64, error) {
	v, err := in.ReadUint64()
	return int64(v), err
}

func (in *Input) ReadFloat32() (float32, error) {
	v, err := in.ReadUint32()
	return math.Float32frombits(v), err
}

func (in *Input) ReadFloat64() (float64, error) {
	v, err := in.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadIntN reads an integer written by WriteIntN with the same byte
// count, least significant byte first, and sign-extends it.
func (in *Input) ReadIntN(n int) (int32, error) {
	if n < 1 || n > 4 {
		return 0, errors.Newf("invalid integer size: %d", n)
	}
	if _, err := in.require(n); err != nil {
		return 0, err
	}

	var u uint32
	for i, b := range in.bytes[in.position : in.position+n] {
		u |= uint32(b) << (8 * i)
	}
	in.position += n

	shift := 32 - 8*n
	return int32(u<<shift) >> shift, nil
}

// ReadVarInt32 reads a varint written by WriteVarInt32 with the same
// optimizePositive setting.
func (in *Input) ReadVarInt32(optimizePositive bool) (int32, error) {
	u, err := in.readUvarint32()
	if err != nil {
		return 0, err
	}
	if !optimizePositive {
		return encoding.UnZigZag32(u), nil
	}
	return int32(u), nil
}

func (in *Input) readUvarint32() (uint32, error) {
	available, err := in.require(1)
	if err != nil {
		return 0, err
	}
	if available < encoding.MaxVarInt32Len {
		var buf [encoding.MaxVarInt32Len]byte
		b, err := in.readVarIntBytes(buf[:])
		if err != nil {
			return 0, err
		}
		u, _ := encoding.DecodeUvarint32(b)
		return u, nil
	}

	u, n := encoding.DecodeUvarint32(in.bytes[in.position:in.limit])
	in.position += n
	return u, nil
}

// ReadVarInt64 reads a varint written by WriteVarInt64 with the same
// optimizePositive setting.
func (in *Input) ReadVarInt64(optimizePositive bool) (int64, error) {
	u, err := in.readUvarint64()
	if err != nil {
		return 0, err
	}
	if !optimizePositive {
		return encoding.UnZigZag64(u), nil
	}
	return int64(u), nil
}

func (in *Input) readUvarint64() (uint64, error) {
	available, err := in.require(1)
	if err != nil {
		return 0, err
	}
	if available < encoding.MaxVarInt64Len {
		var buf [encoding.MaxVarInt64Len]byte
		b, err := in.readVarIntBytes(buf[:])
		if err != nil {
			return 0, err
		}
		u, _ := encoding.DecodeUvarint64(b)
		return u, nil
	}

	u, n := encoding.DecodeUvarint64(in.bytes[in.position:in.limit])
	in.position += n
	return u, nil
}

// readVarIntBytes copies a varint of at most len(buf) bytes into buf, one
// byte at a time, and returns the bytes copied.
func (in *Input) readVarIntBytes(buf []byte) ([]byte, error) {
	for i := range buf {
		if in.position == in.limit {
			if _, err := in.require(1); err != nil {
				return nil, err
			}
		}
		c := in.bytes[in.position]
		in.position++
		buf[i] = c
		if c&0x80 == 0 {
			return buf[:i+1], nil
		}
	}
	return buf, nil
}

// ReadCompactInt32 reads an integer written by WriteCompactInt32: a varint,
// or a fixed 4 byte integer if the Input was created with FixedLength.
func (in *Input) ReadCompactInt32(optimizePositive bool) (int32, error) {
	if in.fixedLength {
		return in.ReadInt32()
	}
	return in.ReadVarInt32(optimizePositive)
}

// ReadCompactInt64 is the 64-bit counterpart of ReadCompactInt32.
func (in *Input) ReadCompactInt64(optimizePositive bool) (int64, error) {
	if in.fixedLength {
		return in.ReadInt64()
	}
	return in.ReadVarInt64(optimizePositive)
}

// CanReadVarInt32 reports whether a complete 32-bit varint can be read
// without reaching the end of data.
func (in *Input) CanReadVarInt32() (bool, error) {
	return in.canReadVarInt(encoding.MaxVarInt32Len)
}

// CanReadVarInt64 reports whether a complete 64-bit varint can be read
// without reaching the end of data.
func (in *Input) CanReadVarInt64() (bool, error) {
	return in.canReadVarInt(encoding.MaxVarInt64Len)
}

func (in *Input) canReadVarInt(max int) (bool, error) {
	if in.limit-in.position >= max {
		return true, nil
	}
	n, err := in.optional(max)
	if err != nil {
		return false, err
	}
	if n <= 0 {
		return false, nil
	}
	return encoding.VarIntComplete(in.bytes[in.position:in.position+n], max), nil
}

// ReadVarInt32Flag returns the flag of the next flagged varint without
// consuming it.
func (in *Input) ReadVarInt32Flag() (bool, error) {
	if in.position == in.limit {
		if _, err := in.require(1); err != nil {
			return false, err
		}
	}
	return in.bytes[in.position]&encoding.FlagBit != 0, nil
}

// ReadVarInt32FlagValue reads the value of a flagged varint written by
// WriteVarInt32Flag, ignoring the flag.
func (in *Input) ReadVarInt32FlagValue(optimizePositive bool) (int32, error) {
	u, err := in.readUvarint32Flag()
	if err != nil {
		return 0, err
	}
	if !optimizePositive {
		return encoding.UnZigZag32(u), nil
	}
	return int32(u), nil
}

func (in *Input) readUvarint32Flag() (uint32, error) {
	available, err := in.require(1)
	if err != nil {
		return 0, err
	}
	if available >= encoding.MaxVarInt32FlagLen {
		_, u, n := encoding.DecodeUvarint32Flag(in.bytes[in.position:in.limit])
		in.position += n
		return u, nil
	}

	first := in.bytes[in.position]
	in.position++
	if first&encoding.FlagContinueBit == 0 {
		return uint32(first & 0x3F), nil
	}

	var buf [encoding.MaxVarInt32FlagLen - 1]byte
	b, err := in.readVarIntBytes(buf[:])
	if err != nil {
		return 0, err
	}
	_, u, _ := encoding.DecodeUvarint32Flag(append([]byte{first}, b...))
	return u, nil
}

// ReadVarFloat32 reads a float written by WriteVarFloat32 with the same
// precision and optimizePositive setting.
func (in *Input) ReadVarFloat32(precision float32, optimizePositive bool) (float32, error) {
	v, err := in.ReadVarInt32(optimizePositive)
	if err != nil {
		return 0, err
	}
	return float32(v) / precision, nil
}

// ReadVarFloat64 reads a float written by WriteVarFloat64 with the same
// precision and optimizePositive setting.
func (in *Input) ReadVarFloat64(precision float64, optimizePositive bool) (float64, error) {
	v, err := in.ReadVarInt64(optimizePositive)
	if err != nil {
		return 0, err
	}
	return float64(v) / precision, nil
}
