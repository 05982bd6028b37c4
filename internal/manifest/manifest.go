// Package manifest describes a sequence of typed values in JSON and writes
// or reads it through the wire codec.
//
// A manifest is a JSON array of entries:
//
//	[
//	  {"type": "varint64", "value": -2368365495612416452},
//	  {"type": "string", "value": "abcdefáéíóú粟"},
//	  {"type": "int32s", "values": [1, 2, 3]},
//	  {"type": "chunk", "skip": true, "values": [{"type": "ascii", "value": "old"}]}
//	]
//
// Decoding uses the manifest as a schema: the entry kinds, array lengths and
// options drive the reads and the values are replaced by the decoded ones.
package manifest

import (
	"github.com/cockroachdb/errors"
)

// Kind is the type of an entry.
type Kind string

// Entry kinds.
const (
	Byte       Kind = "byte"
	Bool       Kind = "bool"
	Int16      Kind = "int16"
	Char       Kind = "char"
	Int32      Kind = "int32"
	Int64      Kind = "int64"
	Float32    Kind = "float32"
	Float64    Kind = "float64"
	IntN       Kind = "intn"
	VarInt32   Kind = "varint32"
	VarInt64   Kind = "varint64"
	VarFlag    Kind = "varflag"
	VarFloat64 Kind = "varfloat64"
	String     Kind = "string"
	ASCII      Kind = "ascii"
	Bools      Kind = "bools"
	Int16s     Kind = "int16s"
	Int32s     Kind = "int32s"
	Int64s     Kind = "int64s"
	Float32s   Kind = "float32s"
	Float64s   Kind = "float64s"
	VarInt32s  Kind = "varint32s"
	VarInt64s  Kind = "varint64s"
	Chunk      Kind = "chunk"
)

var (
	// ErrInvalidManifest is returned when a manifest cannot be parsed or
	// does not fit the stream it is used with.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Entry is one value of a manifest. Only the fields relevant to its Kind
// are used.
type Entry struct {
	Kind Kind

	Int    int64
	Float  float64
	Bool   bool
	String *string

	Ints   []int64
	Floats []float64
	Bools  []bool

	// Size is the width of an intn entry, from 1 to 4 bytes.
	Size int
	// Positive selects the unsigned varint encoding.
	Positive bool
	// Flag is the extra bit of a varflag entry.
	Flag bool
	// Precision is the multiplier of a varfloat64 entry.
	Precision float64

	// Skip makes Decode jump over a chunk without reading it.
	Skip bool
	// Entries are the values of a chunk.
	Entries []Entry
}

func (k Kind) isArray() bool {
	switch k {
	case Bools, Int16s, Int32s, Int64s, Float32s, Float64s, VarInt32s, VarInt64s:
		return true
	}
	return false
}

// Len returns the number of values of an array entry.
func (e *Entry) Len() int {
	switch e.Kind {
	case Bools:
		return len(e.Bools)
	case Float32s, Float64s:
		return len(e.Floats)
	}
	return len(e.Ints)
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidManifest, format, args...)
}
