package encoding

// Maximum encoded sizes.
const (
	MaxVarInt32Len     = 5
	MaxVarInt64Len     = 9
	MaxVarInt32FlagLen = 5
	MaxChunkLengthLen  = 5
)

// Varint-with-flag bits of the first byte.
const (
	FlagBit         = 0x80
	FlagContinueBit = 0x40
	flagDataMask    = 0x3F
)

func ZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

func UnZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

func ZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func UnZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Uvarint32Len returns the number of bytes needed to encode u.
func Uvarint32Len(u uint32) int {
	switch {
	case u>>7 == 0:
		return 1
	case u>>14 == 0:
		return 2
	case u>>21 == 0:
		return 3
	case u>>28 == 0:
		return 4
	}
	return 5
}

// Uvarint64Len returns the number of bytes needed to encode u.
func Uvarint64Len(u uint64) int {
	switch {
	case u>>7 == 0:
		return 1
	case u>>14 == 0:
		return 2
	case u>>21 == 0:
		return 3
	case u>>28 == 0:
		return 4
	case u>>35 == 0:
		return 5
	case u>>42 == 0:
		return 6
	case u>>49 == 0:
		return 7
	case u>>56 == 0:
		return 8
	}
	return 9
}

// Uvarint32FlagLen returns the number of bytes needed to encode u
// with a flag bit stolen from the first byte.
func Uvarint32FlagLen(u uint32) int {
	switch {
	case u>>6 == 0:
		return 1
	case u>>13 == 0:
		return 2
	case u>>20 == 0:
		return 3
	case u>>27 == 0:
		return 4
	}
	return 5
}

// PutUvarint32 encodes u into b, which must have room for
// Uvarint32Len(u) bytes, and returns the number of bytes written.
func PutUvarint32(b []byte, u uint32) int {
	if u>>7 == 0 {
		b[0] = byte(u)
		return 1
	}
	b[0] = byte(u) | 0x80
	if u>>14 == 0 {
		b[1] = byte(u >> 7)
		return 2
	}
	b[1] = byte(u>>7) | 0x80
	if u>>21 == 0 {
		b[2] = byte(u >> 14)
		return 3
	}
	b[2] = byte(u>>14) | 0x80
	if u>>28 == 0 {
		b[3] = byte(u >> 21)
		return 4
	}
	b[3] = byte(u>>21) | 0x80
	b[4] = byte(u >> 28)
	return 5
}

// PutUvarint64 encodes u into b, which must have room for
// Uvarint64Len(u) bytes, and returns the number of bytes written.
// The ninth byte, if any, holds the top 8 bits verbatim.
func PutUvarint64(b []byte, u uint64) int {
	for i := 0; i < 8; i++ {
		if u>>7 == 0 {
			b[i] = byte(u)
			return i + 1
		}
		b[i] = byte(u) | 0x80
		u >>= 7
	}
	b[8] = byte(u)
	return 9
}

// PutUvarint32Flag encodes flag and u into b, which must have room for
// Uvarint32FlagLen(u) bytes, and returns the number of bytes written.
func PutUvarint32Flag(b []byte, flag bool, u uint32) int {
	first := byte(u & flagDataMask)
	if flag {
		first |= FlagBit
	}
	if u>>6 == 0 {
		b[0] = first
		return 1
	}
	b[0] = first | FlagContinueBit
	return 1 + PutUvarint32(b[1:], u>>6)
}

func EncodeUvarint32(dst []byte, u uint32) []byte {
	var buf [MaxVarInt32Len]byte
	n := PutUvarint32(buf[:], u)
	return append(dst, buf[:n]...)
}

func EncodeUvarint64(dst []byte, u uint64) []byte {
	var buf [MaxVarInt64Len]byte
	n := PutUvarint64(buf[:], u)
	return append(dst, buf[:n]...)
}

func EncodeVarInt32(dst []byte, v int32, optimizePositive bool) []byte {
	if !optimizePositive {
		return EncodeUvarint32(dst, ZigZag32(v))
	}
	return EncodeUvarint32(dst, uint32(v))
}

func EncodeVarInt64(dst []byte, v int64, optimizePositive bool) []byte {
	if !optimizePositive {
		return EncodeUvarint64(dst, ZigZag64(v))
	}
	return EncodeUvarint64(dst, uint64(v))
}

func EncodeUvarint32Flag(dst []byte, flag bool, u uint32) []byte {
	var buf [MaxVarInt32FlagLen]byte
	n := PutUvarint32Flag(buf[:], flag, u)
	return append(dst, buf[:n]...)
}

// DecodeUvarint32 decodes a varint from b. It returns n == 0 if b
// ends before the varint does.
func DecodeUvarint32(b []byte) (u uint32, n int) {
	for shift := uint(0); n < MaxVarInt32Len; shift += 7 {
		if n == len(b) {
			return 0, 0
		}
		c := b[n]
		n++
		u |= uint32(c&0x7F) << shift
		if c&0x80 == 0 || n == MaxVarInt32Len {
			return u, n
		}
	}
	return u, n
}

// DecodeUvarint64 decodes a varint from b. It returns n == 0 if b
// ends before the varint does.
func DecodeUvarint64(b []byte) (u uint64, n int) {
	for shift := uint(0); n < MaxVarInt64Len-1; shift += 7 {
		if n == len(b) {
			return 0, 0
		}
		c := b[n]
		n++
		u |= uint64(c&0x7F) << shift
		if c&0x80 == 0 {
			return u, n
		}
	}
	if n == len(b) {
		return 0, 0
	}
	u |= uint64(b[n]) << 56
	return u, n + 1
}

// DecodeUvarint32Flag decodes a flagged varint from b. It returns
// n == 0 if b ends before the varint does.
func DecodeUvarint32Flag(b []byte) (flag bool, u uint32, n int) {
	if len(b) == 0 {
		return false, 0, 0
	}
	first := b[0]
	flag = first&FlagBit != 0
	u = uint32(first & flagDataMask)
	if first&FlagContinueBit == 0 {
		return flag, u, 1
	}
	rest, m := decodeUvarint32Tail(b[1:])
	if m == 0 {
		return false, 0, 0
	}
	return flag, u | rest<<6, m + 1
}

// decodeUvarint32Tail decodes the up to four bytes following the first
// byte of a flagged varint.
func decodeUvarint32Tail(b []byte) (u uint32, n int) {
	for shift := uint(0); n < MaxVarInt32FlagLen-1; shift += 7 {
		if n == len(b) {
			return 0, 0
		}
		c := b[n]
		n++
		u |= uint32(c&0x7F) << shift
		if c&0x80 == 0 {
			return u, n
		}
	}
	return u, n
}

func DecodeVarInt32(b []byte, optimizePositive bool) (int32, int) {
	u, n := DecodeUvarint32(b)
	if !optimizePositive {
		return UnZigZag32(u), n
	}
	return int32(u), n
}

func DecodeVarInt64(b []byte, optimizePositive bool) (int64, int) {
	u, n := DecodeUvarint64(b)
	if !optimizePositive {
		return UnZigZag64(u), n
	}
	return int64(u), n
}

// VarIntComplete reports whether b holds a complete varint of at most
// max bytes without decoding it.
func VarIntComplete(b []byte, max int) bool {
	for i := 0; i < len(b) && i < max; i++ {
		if b[i]&0x80 == 0 || i == max-1 {
			return true
		}
	}
	return false
}
