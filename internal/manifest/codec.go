package manifest

import (
	"github.com/chaisql/wire"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Encode writes the entries to out, which is not flushed. Chunk entries
// require EncodeChunked.
func Encode(out *wire.Output, entries []Entry) error {
	for i := range entries {
		if err := encodeEntry(out, &entries[i]); err != nil {
			return errors.Wrapf(err, "entry %d", i)
		}
	}
	return nil
}

// EncodeChunked writes every entry, which must all be chunks, as one
// logical chunk.
func EncodeChunked(out *wire.OutputChunked, entries []Entry) error {
	for i := range entries {
		if entries[i].Kind != Chunk {
			return invalidf("entry %d: a chunked stream only holds chunks", i)
		}
		if err := Encode(out.Output, entries[i].Entries); err != nil {
			return errors.Wrapf(err, "chunk %d", i)
		}
		if err := out.EndChunk(); err != nil {
			return err
		}
	}
	return nil
}

func encodeEntry(out *wire.Output, e *Entry) error {
	var err error
	switch e.Kind {
	case Byte:
		err = out.WriteByte(byte(e.Int))
	case Bool:
		err = out.WriteBool(e.Bool)
	case Int16:
		err = out.WriteInt16(int16(e.Int))
	case Char:
		err = out.WriteUint16(uint16(e.Int))
	case Int32:
		err = out.WriteInt32(int32(e.Int))
	case Int64:
		err = out.WriteInt64(e.Int)
	case Float32:
		err = out.WriteFloat32(float32(e.Float))
	case Float64:
		err = out.WriteFloat64(e.Float)
	case IntN:
		err = out.WriteIntN(int32(e.Int), e.Size)
	case VarInt32:
		_, err = out.WriteVarInt32(int32(e.Int), e.Positive)
	case VarInt64:
		_, err = out.WriteVarInt64(e.Int, e.Positive)
	case VarFlag:
		_, err = out.WriteVarInt32Flag(e.Flag, int32(e.Int), e.Positive)
	case VarFloat64:
		_, err = out.WriteVarFloat64(e.Float, e.Precision, e.Positive)
	case String:
		err = out.WriteNullableString(e.String)
	case ASCII:
		if e.String == nil {
			return invalidf("ascii requires a non-null string")
		}
		err = out.WriteASCII(*e.String)
	case Bools:
		err = out.WriteBools(e.Bools)
	case Int16s:
		err = out.WriteInt16s(convert[int16](e.Ints))
	case Int32s:
		err = out.WriteInt32s(convert[int32](e.Ints))
	case Int64s:
		err = out.WriteInt64s(e.Ints)
	case Float32s:
		err = out.WriteFloat32s(convert[float32](e.Floats))
	case Float64s:
		err = out.WriteFloat64s(e.Floats)
	case VarInt32s:
		err = out.WriteVarInt32s(convert[int32](e.Ints), e.Positive)
	case VarInt64s:
		err = out.WriteVarInt64s(e.Ints, e.Positive)
	case Chunk:
		return invalidf("chunks require a chunked stream")
	default:
		return invalidf("unknown type %q", e.Kind)
	}
	return err
}

// Decode reads the values described by schema from in and returns them
// as new entries. Chunk entries require DecodeChunked.
func Decode(in *wire.Input, schema []Entry) ([]Entry, error) {
	entries := make([]Entry, len(schema))
	for i := range schema {
		e, err := decodeEntry(in, &schema[i])
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		entries[i] = e
	}
	return entries, nil
}

// DecodeChunked reads one logical chunk per schema entry, which must all be
// chunks. Chunks marked with Skip are jumped over and returned without
// values. Values left unread at the end of a chunk are ignored.
func DecodeChunked(in *wire.InputChunked, schema []Entry) ([]Entry, error) {
	entries := make([]Entry, len(schema))
	for i := range schema {
		s := &schema[i]
		if s.Kind != Chunk {
			return nil, invalidf("entry %d: a chunked stream only holds chunks", i)
		}

		entries[i] = Entry{Kind: Chunk, Skip: s.Skip}
		if !s.Skip {
			values, err := Decode(in.Input, s.Entries)
			if err != nil {
				return nil, errors.Wrapf(err, "chunk %d", i)
			}
			entries[i].Entries = values
		}

		if err := in.NextChunk(); err != nil {
			return nil, errors.Wrapf(err, "chunk %d", i)
		}
	}
	return entries, nil
}

func decodeEntry(in *wire.Input, s *Entry) (Entry, error) {
	e := Entry{
		Kind:      s.Kind,
		Size:      s.Size,
		Positive:  s.Positive,
		Precision: s.Precision,
	}

	var err error
	switch s.Kind {
	case Byte:
		var b int8
		b, err = in.ReadInt8()
		e.Int = int64(b)
	case Bool:
		e.Bool, err = in.ReadBool()
	case Int16:
		var v int16
		v, err = in.ReadInt16()
		e.Int = int64(v)
	case Char:
		var v uint16
		v, err = in.ReadUint16()
		e.Int = int64(v)
	case Int32:
		var v int32
		v, err = in.ReadInt32()
		e.Int = int64(v)
	case Int64:
		e.Int, err = in.ReadInt64()
	case Float32:
		var v float32
		v, err = in.ReadFloat32()
		e.Float = float64(v)
	case Float64:
		e.Float, err = in.ReadFloat64()
	case IntN:
		var v int32
		v, err = in.ReadIntN(s.Size)
		e.Int = int64(v)
	case VarInt32:
		var v int32
		v, err = in.ReadVarInt32(s.Positive)
		e.Int = int64(v)
	case VarInt64:
		e.Int, err = in.ReadVarInt64(s.Positive)
	case VarFlag:
		e.Flag, err = in.ReadVarInt32Flag()
		if err == nil {
			var v int32
			v, err = in.ReadVarInt32FlagValue(s.Positive)
			e.Int = int64(v)
		}
	case VarFloat64:
		e.Float, err = in.ReadVarFloat64(s.Precision, s.Positive)
	case String:
		e.String, err = in.ReadNullableString()
	case ASCII:
		var str string
		str, err = in.ReadString()
		e.String = &str
	case Bools:
		e.Bools, err = in.ReadBools(s.Len())
	case Int16s:
		var vs []int16
		vs, err = in.ReadInt16s(s.Len())
		e.Ints = convert[int64](vs)
	case Int32s:
		var vs []int32
		vs, err = in.ReadInt32s(s.Len())
		e.Ints = convert[int64](vs)
	case Int64s:
		e.Ints, err = in.ReadInt64s(s.Len())
	case Float32s:
		var vs []float32
		vs, err = in.ReadFloat32s(s.Len())
		e.Floats = convert[float64](vs)
	case Float64s:
		e.Floats, err = in.ReadFloat64s(s.Len())
	case VarInt32s:
		var vs []int32
		vs, err = in.ReadVarInt32s(s.Len(), s.Positive)
		e.Ints = convert[int64](vs)
	case VarInt64s:
		e.Ints, err = in.ReadVarInt64s(s.Len(), s.Positive)
	case Chunk:
		return e, invalidf("chunks require a chunked stream")
	default:
		return e, invalidf("unknown type %q", s.Kind)
	}
	return e, err
}

type number interface {
	constraints.Integer | constraints.Float
}

func convert[T, S number](s []S) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = T(v)
	}
	return out
}
