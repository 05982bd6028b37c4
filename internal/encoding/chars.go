package encoding

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Strings are measured and encoded as sequences of UTF-16 code units,
// each written in one to three bytes:
//
//	0xxxxxxx
//	110xxxxx 10xxxxxx
//	1110xxxx 10xxxxxx 10xxxxxx
//
// A rune outside the basic multilingual plane is two code units (a
// surrogate pair) and thus takes six bytes.

// IsASCII reports whether every byte of s is below 0x80.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// CharCount returns the number of UTF-16 code units in s.
// Invalid UTF-8 bytes count as one unit each (U+FFFD).
func CharCount(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			n++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UnitLen returns the number of bytes used to encode the code unit c.
func UnitLen(c uint16) int {
	switch {
	case c <= 0x7F:
		return 1
	case c <= 0x7FF:
		return 2
	}
	return 3
}

// PutUnit encodes c into b, which must have room for UnitLen(c) bytes,
// and returns the number of bytes written.
func PutUnit(b []byte, c uint16) int {
	switch {
	case c <= 0x7F:
		b[0] = byte(c)
		return 1
	case c <= 0x7FF:
		b[0] = byte(0xC0 | c>>6&0x1F)
		b[1] = byte(0x80 | c&0x3F)
		return 2
	}
	b[0] = byte(0xE0 | c>>12&0x0F)
	b[1] = byte(0x80 | c>>6&0x3F)
	b[2] = byte(0x80 | c&0x3F)
	return 3
}

// EncodeChars appends the one to three byte encoding of every code
// unit of s to dst.
func EncodeChars(dst []byte, s string) []byte {
	var buf [3]byte
	for _, r := range s {
		if r < utf8.RuneSelf {
			dst = append(dst, byte(r))
			continue
		}
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			n := PutUnit(buf[:], uint16(r1))
			dst = append(dst, buf[:n]...)
			n = PutUnit(buf[:], uint16(r2))
			dst = append(dst, buf[:n]...)
			continue
		}
		n := PutUnit(buf[:], uint16(r))
		dst = append(dst, buf[:n]...)
	}
	return dst
}

// LeadUnitLen returns the encoded length of a code unit from its leading
// byte, or 0 if b cannot start a code unit.
func LeadUnitLen(b byte) int {
	switch b >> 4 {
	case 0, 1, 2, 3, 4, 5, 6, 7:
		return 1
	case 12, 13:
		return 2
	case 14:
		return 3
	}
	return 0
}

// DecodeUnit decodes one code unit from b, whose length must be
// LeadUnitLen(b[0]).
func DecodeUnit(b []byte) uint16 {
	switch len(b) {
	case 1:
		return uint16(b[0])
	case 2:
		return uint16(b[0]&0x1F)<<6 | uint16(b[1]&0x3F)
	}
	return uint16(b[0]&0x0F)<<12 | uint16(b[1]&0x3F)<<6 | uint16(b[2]&0x3F)
}

// UnitsToString converts code units back to a Go string. Unpaired
// surrogates become U+FFFD.
func UnitsToString(units []uint16) string {
	for _, c := range units {
		if c >= utf8.RuneSelf {
			return string(utf16.Decode(units))
		}
	}
	b := make([]byte, len(units))
	for i, c := range units {
		b[i] = byte(c)
	}
	return string(b)
}
