package wire

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// PrimitiveCodec packs fixed-width values into bytes. Exactly one codec is
// used for the whole life of a stream: a stream written with Native cannot
// be read with Portable, and cannot be read with Native on a host of the
// other byte order.
type PrimitiveCodec interface {
	binary.ByteOrder

	// Portable reports whether the layout is independent of the host.
	Portable() bool

	// hostOrder reports whether the layout equals the host memory layout,
	// which allows arrays to be copied without per-element conversion.
	hostOrder() bool
}

var (
	// Portable stores values least significant byte first on every host.
	// It is the default codec and the interchange format.
	Portable PrimitiveCodec = portableCodec{binary.LittleEndian}

	// Native stores values in the byte order of the host, using single
	// machine loads and stores.
	Native PrimitiveCodec = newNativeCodec()
)

type portableCodec struct {
	binary.ByteOrder
}

func (portableCodec) Portable() bool { return true }

func (portableCodec) hostOrder() bool { return !cpu.IsBigEndian }

func (portableCodec) String() string { return "Portable" }

type nativeCodec struct {
	binary.ByteOrder
}

func newNativeCodec() nativeCodec {
	if cpu.IsBigEndian {
		return nativeCodec{binary.BigEndian}
	}
	return nativeCodec{binary.LittleEndian}
}

func (nativeCodec) Portable() bool { return false }

func (nativeCodec) hostOrder() bool { return true }

func (nativeCodec) String() string { return "Native" }
