package manifest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Format renders entries as a JSON manifest that Parse accepts, one entry
// per line. Non-finite floats are rendered as null.
func Format(entries []Entry) []byte {
	var buf bytes.Buffer
	formatEntries(&buf, entries, "")
	buf.WriteByte('\n')
	return buf.Bytes()
}

func formatEntries(buf *bytes.Buffer, entries []Entry, indent string) {
	buf.WriteByte('[')
	for i := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n" + indent + "  ")
		formatEntry(buf, &entries[i], indent+"  ")
	}
	if len(entries) > 0 {
		buf.WriteString("\n" + indent)
	}
	buf.WriteByte(']')
}

func formatEntry(buf *bytes.Buffer, e *Entry, indent string) {
	buf.WriteString(`{"type": `)
	formatString(buf, string(e.Kind))

	switch e.Kind {
	case IntN:
		buf.WriteString(`, "size": `)
		buf.WriteString(strconv.Itoa(e.Size))
	case VarFlag:
		buf.WriteString(`, "flag": `)
		buf.WriteString(strconv.FormatBool(e.Flag))
	case VarFloat64:
		buf.WriteString(`, "precision": `)
		formatFloat(buf, e.Precision)
	case Chunk:
		if e.Skip {
			buf.WriteString(`, "skip": true`)
		}
	}
	if e.Positive {
		buf.WriteString(`, "positive": true`)
	}

	switch e.Kind {
	case Byte, Int16, Char, Int32, Int64, IntN, VarInt32, VarInt64, VarFlag:
		buf.WriteString(`, "value": `)
		buf.WriteString(strconv.FormatInt(e.Int, 10))
	case Bool:
		buf.WriteString(`, "value": `)
		buf.WriteString(strconv.FormatBool(e.Bool))
	case Float32, Float64, VarFloat64:
		buf.WriteString(`, "value": `)
		formatFloat(buf, e.Float)
	case String, ASCII:
		buf.WriteString(`, "value": `)
		if e.String == nil {
			buf.WriteString("null")
		} else {
			formatString(buf, *e.String)
		}
	case Bools:
		buf.WriteString(`, "values": [`)
		for i, b := range e.Bools {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.FormatBool(b))
		}
		buf.WriteByte(']')
	case Float32s, Float64s:
		buf.WriteString(`, "values": [`)
		for i, f := range e.Floats {
			if i > 0 {
				buf.WriteString(", ")
			}
			formatFloat(buf, f)
		}
		buf.WriteByte(']')
	case Int16s, Int32s, Int64s, VarInt32s, VarInt64s:
		buf.WriteString(`, "values": [`)
		for i, v := range e.Ints {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.FormatInt(v, 10))
		}
		buf.WriteByte(']')
	case Chunk:
		if !e.Skip || len(e.Entries) > 0 {
			buf.WriteString(`, "values": `)
			formatEntries(buf, e.Entries, indent)
		}
	}

	buf.WriteByte('}')
}

func formatFloat(buf *bytes.Buffer, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}

	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e15 {
			fmt = 'e'
		}
	}

	// -1 uses the smallest number of digits that round-trips.
	buf.Write(strconv.AppendFloat(nil, f, fmt, -1, 64))
}

func formatString(buf *bytes.Buffer, s string) {
	// Marshaling a string never fails.
	b, _ := json.Marshal(s)
	buf.Write(b)
}
