package manifest

import (
	"math"

	"github.com/buger/jsonparser"
	"github.com/chaisql/wire/internal/encoding"
	"github.com/cockroachdb/errors"
)

// Parse parses a JSON manifest.
func Parse(data []byte) ([]Entry, error) {
	return parseEntries(data, true)
}

func parseEntries(data []byte, top bool) ([]Entry, error) {
	var entries []Entry
	var perr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}
		if dataType != jsonparser.Object {
			perr = invalidf("entry %d: expected an object, got %s", len(entries), dataType)
			return
		}

		e, err := parseEntry(value, top)
		if err != nil {
			perr = errors.Wrapf(err, "entry %d", len(entries))
			return
		}
		entries = append(entries, e)
	})
	if perr != nil {
		return nil, perr
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "cannot parse manifest"), ErrInvalidManifest)
	}

	return entries, nil
}

// field is a raw member of an entry object.
type field struct {
	data     []byte
	dataType jsonparser.ValueType
}

func (f field) missing() bool {
	return f.dataType == jsonparser.NotExist
}

func parseEntry(data []byte, top bool) (Entry, error) {
	var e Entry
	var value, values field

	err := jsonparser.ObjectEach(data, func(key, v []byte, dt jsonparser.ValueType, offset int) error {
		var err error
		switch string(key) {
		case "type":
			if dt != jsonparser.String {
				return invalidf("type must be a string")
			}
			e.Kind = Kind(v)
		case "value":
			value = field{v, dt}
		case "values":
			values = field{v, dt}
		case "positive":
			e.Positive, err = parseBool(field{v, dt})
		case "flag":
			e.Flag, err = parseBool(field{v, dt})
		case "skip":
			e.Skip, err = parseBool(field{v, dt})
		case "size":
			var size int64
			size, err = parseInt(field{v, dt}, 1, 4)
			e.Size = int(size)
		case "precision":
			e.Precision, err = parseFloat(field{v, dt})
		default:
			return invalidf("unknown field %q", key)
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	if err != nil {
		return e, errors.Mark(err, ErrInvalidManifest)
	}

	switch e.Kind {
	case Byte:
		e.Int, err = parseInt(value, math.MinInt8, math.MaxUint8)
	case Bool:
		e.Bool, err = parseBool(value)
	case Int16:
		e.Int, err = parseInt(value, math.MinInt16, math.MaxInt16)
	case Char:
		e.Int, err = parseInt(value, 0, math.MaxUint16)
	case Int32, VarInt32, VarFlag:
		e.Int, err = parseInt(value, math.MinInt32, math.MaxInt32)
	case Int64, VarInt64:
		e.Int, err = parseInt(value, math.MinInt64, math.MaxInt64)
	case IntN:
		if e.Size == 0 {
			return e, invalidf("intn requires a size")
		}
		e.Int, err = parseInt(value, math.MinInt32, math.MaxInt32)
	case Float32, Float64:
		e.Float, err = parseFloat(value)
	case VarFloat64:
		if e.Precision <= 0 {
			return e, invalidf("varfloat64 requires a positive precision")
		}
		e.Float, err = parseFloat(value)
	case String, ASCII:
		e.String, err = parseString(value)
		if err == nil && e.Kind == ASCII && (e.String == nil || !encoding.IsASCII(*e.String)) {
			err = invalidf("ascii requires a non-null ASCII string")
		}
	case Bools:
		e.Bools, err = parseBools(values)
	case Int16s:
		e.Ints, err = parseInts(values, math.MinInt16, math.MaxInt16)
	case Int32s, VarInt32s:
		e.Ints, err = parseInts(values, math.MinInt32, math.MaxInt32)
	case Int64s, VarInt64s:
		e.Ints, err = parseInts(values, math.MinInt64, math.MaxInt64)
	case Float32s, Float64s:
		e.Floats, err = parseFloats(values)
	case Chunk:
		if !top {
			return e, invalidf("chunks cannot be nested")
		}
		if !values.missing() {
			e.Entries, err = parseEntries(values.data, false)
		}
	case "":
		return e, invalidf("missing type")
	default:
		return e, invalidf("unknown type %q", e.Kind)
	}

	return e, err
}

func parseBool(f field) (bool, error) {
	if f.dataType != jsonparser.Boolean {
		return false, invalidf("expected a boolean, got %s", f.dataType)
	}
	return jsonparser.ParseBoolean(f.data)
}

func parseInt(f field, min, max int64) (int64, error) {
	if f.dataType != jsonparser.Number {
		return 0, invalidf("expected a number, got %s", f.dataType)
	}
	i, err := jsonparser.ParseInt(f.data)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "invalid integer %s", f.data), ErrInvalidManifest)
	}
	if i < min || i > max {
		return 0, invalidf("%d out of range [%d, %d]", i, min, max)
	}
	return i, nil
}

func parseFloat(f field) (float64, error) {
	if f.dataType != jsonparser.Number {
		return 0, invalidf("expected a number, got %s", f.dataType)
	}
	v, err := jsonparser.ParseFloat(f.data)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "invalid number %s", f.data), ErrInvalidManifest)
	}
	return v, nil
}

func parseString(f field) (*string, error) {
	switch f.dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(f.data)
		if err != nil {
			return nil, errors.Mark(err, ErrInvalidManifest)
		}
		return &s, nil
	}
	return nil, invalidf("expected a string or null, got %s", f.dataType)
}

// eachValue calls fn for every element of an array field. A missing field
// is an empty array.
func eachValue(f field, fn func(field) error) error {
	if f.missing() {
		return nil
	}
	if f.dataType != jsonparser.Array {
		return invalidf("expected an array, got %s", f.dataType)
	}

	var ferr error
	_, err := jsonparser.ArrayEach(f.data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if ferr != nil {
			return
		}
		if err != nil {
			ferr = err
			return
		}
		ferr = fn(field{value, dataType})
	})
	if ferr != nil {
		return ferr
	}
	return errors.Mark(err, ErrInvalidManifest)
}

func parseBools(f field) ([]bool, error) {
	var bs []bool
	err := eachValue(f, func(v field) error {
		b, err := parseBool(v)
		bs = append(bs, b)
		return err
	})
	return bs, err
}

func parseInts(f field, min, max int64) ([]int64, error) {
	var is []int64
	err := eachValue(f, func(v field) error {
		i, err := parseInt(v, min, max)
		is = append(is, i)
		return err
	})
	return is, err
}

func parseFloats(f field) ([]float64, error) {
	var fs []float64
	err := eachValue(f, func(v field) error {
		x, err := parseFloat(v)
		fs = append(fs, x)
		return err
	})
	return fs, err
}
