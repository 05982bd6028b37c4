package wire

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// fixedWidth are the element types of bulk arrays.
type fixedWidth interface {
	constraints.Integer | constraints.Float
}

func widthOf[T fixedWidth]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// asBytes returns the memory of s as a byte slice.
func asBytes[T fixedWidth](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*widthOf[T]())
}

// putArray writes the elements of s into dst using the layout of c and
// returns the number of bytes written. dst must be large enough.
func putArray[T fixedWidth](c PrimitiveCodec, dst []byte, s []T) int {
	n := copy(dst, asBytes(s))
	if !c.hostOrder() {
		swapEach(dst[:n], widthOf[T]())
	}
	return n
}

// getArray fills s from src, laid out by c, and returns the number of
// bytes consumed. src must be large enough.
func getArray[T fixedWidth](c PrimitiveCodec, s []T, src []byte) int {
	b := asBytes(s)
	n := copy(b, src)
	if !c.hostOrder() {
		swapEach(b[:n], widthOf[T]())
	}
	return n
}

// swapEach reverses the byte order of every width-byte group of b.
func swapEach(b []byte, width int) {
	if width == 1 {
		return
	}
	for i := 0; i+width <= len(b); i += width {
		g := b[i : i+width]
		for l, r := 0, width-1; l < r; l, r = l+1, r-1 {
			g[l], g[r] = g[r], g[l]
		}
	}
}
