package wire

import (
	"unicode/utf8"
	"unsafe"

	"github.com/chaisql/wire/internal/encoding"
)

// ReadString reads a string written by WriteString, WriteNullableString or
// WriteASCII. A null string reads as "".
func (in *Input) ReadString() (string, error) {
	s, _, err := in.readString()
	return s, err
}

// ReadNullableString reads a string written by WriteNullableString,
// returning nil for a null string.
func (in *Input) ReadNullableString() (*string, error) {
	s, ok, err := in.readString()
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (in *Input) readString() (string, bool, error) {
	general, err := in.ReadVarInt32Flag()
	if err != nil {
		return "", false, err
	}
	if !general {
		s, err := in.readASCII()
		return s, true, err
	}

	// Null, empty, or general form with the length plus one.
	charCount, err := in.readUvarint32Flag()
	if err != nil {
		return "", false, err
	}
	switch charCount {
	case 0:
		return "", false, nil
	case 1:
		return "", true, nil
	}

	s, err := in.readChars(int(charCount - 1))
	return s, true, err
}

// readASCII reads bytes up to and including the first one with its high
// bit set, which terminates the string.
func (in *Input) readASCII() (string, error) {
	start := in.position
	for end := start; end < in.limit; end++ {
		if in.bytes[end]&0x80 == 0 {
			continue
		}
		in.position = end + 1
		return asciiString(in.bytes[start:in.position]), nil
	}
	return in.readASCIISlow()
}

func (in *Input) readASCIISlow() (string, error) {
	// The buffer ran out before the end of the string.
	b := make([]byte, in.limit-in.position, 32)
	copy(b, in.bytes[in.position:in.limit])
	in.position = in.limit

	for {
		if _, err := in.require(1); err != nil {
			return "", err
		}
		c := in.bytes[in.position]
		in.position++
		b = append(b, c)
		if c&0x80 != 0 {
			return asciiString(b), nil
		}
	}
}

// asciiString copies b into a string, clearing the terminator bit of the
// last byte.
func asciiString(b []byte) string {
	buf := make([]byte, len(b))
	copy(buf, b)
	buf[len(buf)-1] &= 0x7F
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// readChars decodes charCount code units.
func (in *Input) readChars(charCount int) (string, error) {
	if _, err := in.require(1); err != nil {
		return "", err
	}

	// Try to read 7 bit ASCII chars straight from the buffer.
	end := min(in.limit, in.position+charCount)
	i := in.position
	for i < end && in.bytes[i] < utf8.RuneSelf {
		i++
	}
	if i-in.position == charCount {
		s := string(in.bytes[in.position:i])
		in.position = i
		return s, nil
	}

	units := in.units[:0]
	for _, b := range in.bytes[in.position:i] {
		units = append(units, uint16(b))
	}
	in.position = i

	for len(units) < charCount {
		if in.position == in.limit {
			if _, err := in.require(1); err != nil {
				return "", err
			}
		}
		size := encoding.LeadUnitLen(in.bytes[in.position])
		if size == 0 {
			in.position++
			units = append(units, utf8.RuneError)
			continue
		}
		if in.limit-in.position < size {
			if _, err := in.require(size); err != nil {
				return "", err
			}
		}
		units = append(units, encoding.DecodeUnit(in.bytes[in.position:in.position+size]))
		in.position += size
	}

	in.units = units
	return encoding.UnitsToString(units), nil
}
