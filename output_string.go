package wire

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/chaisql/wire/internal/encoding"
	"github.com/cockroachdb/errors"
)

// String markers. A first byte with the flag bit clear starts an ASCII
// string whose last byte has its high bit set.
const (
	stringNull  = 0x80
	stringEmpty = 0x81

	// maxAutoASCII is the longest string WriteString checks for the ASCII
	// form.
	maxAutoASCII = 32
)

// WriteString writes s. Short ASCII strings are written in the ASCII form,
// others as a length followed by their code units.
func (o *Output) WriteString(s string) error {
	if len(s) == 0 {
		return o.WriteByte(stringEmpty)
	}
	if len(s) > 1 && len(s) <= maxAutoASCII && encoding.IsASCII(s) {
		return o.writeASCII(s)
	}
	return o.writeChars(s)
}

// WriteNullableString writes s, or the null marker if s is nil.
func (o *Output) WriteNullableString(s *string) error {
	if s == nil {
		return o.WriteByte(stringNull)
	}
	return o.WriteString(*s)
}

// WriteASCII writes s, which must only contain ASCII characters, in the
// ASCII form whatever its length.
func (o *Output) WriteASCII(s string) error {
	if !encoding.IsASCII(s) {
		return errors.Newf("string is not ASCII: %q", s)
	}

	switch len(s) {
	case 0:
		return o.WriteByte(stringEmpty)
	case 1:
		// The ASCII form cannot tell a single char from its terminator.
		if err := o.require(2); err != nil {
			return err
		}
		o.bytes[o.position] = encoding.FlagBit | 2
		o.bytes[o.position+1] = s[0]
		o.position += 2
		return nil
	}
	return o.writeASCII(s)
}

// writeASCII writes s, at least two ASCII bytes long, and sets the high
// bit of its last byte.
func (o *Output) writeASCII(s string) error {
	if len(o.bytes)-o.position >= len(s) {
		o.position += copy(o.bytes[o.position:], s)
	} else if err := o.writeASCIISlow(s); err != nil {
		return err
	}
	o.bytes[o.position-1] |= 0x80
	return nil
}

func (o *Output) writeASCIISlow(s string) error {
	if o.position == len(o.bytes) {
		if err := o.require(1); err != nil {
			return err
		}
	}
	for {
		n := copy(o.bytes[o.position:], s)
		o.position += n
		s = s[n:]
		if len(s) == 0 {
			return nil
		}
		if err := o.require(min(len(s), len(o.bytes))); err != nil {
			return err
		}
	}
}

// writeChars writes the general form: the number of code units plus one
// as a flagged varint, followed by the code units.
func (o *Output) writeChars(s string) error {
	charCount := encoding.CharCount(s)
	if _, err := o.writeUvarint32Flag(true, uint32(charCount+1)); err != nil {
		return err
	}

	// Try to write 7 bit chars straight into the buffer.
	i := 0
	if len(o.bytes)-o.position >= charCount {
		b := o.bytes[o.position:]
		for i < len(s) && s[i] < utf8.RuneSelf {
			b[i] = s[i]
			i++
		}
		o.position += i
	}
	if i == len(s) {
		return nil
	}

	// Every code unit takes at most 3 bytes.
	rest := s[i:]
	if len(o.bytes)-o.position >= 3*encoding.CharCount(rest) {
		o.position = len(encoding.EncodeChars(o.bytes[:o.position], rest))
		return nil
	}
	return o.writeCharsSlow(rest)
}

func (o *Output) writeCharsSlow(s string) error {
	for _, r := range s {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			if err := o.writeUnit(uint16(r1)); err != nil {
				return err
			}
			r = r2
		}
		if err := o.writeUnit(uint16(r)); err != nil {
			return err
		}
	}
	return nil
}

func (o *Output) writeUnit(c uint16) error {
	size := encoding.UnitLen(c)
	if len(o.bytes)-o.position < size {
		if err := o.require(size); err != nil {
			return err
		}
	}
	o.position += encoding.PutUnit(o.bytes[o.position:], c)
	return nil
}
