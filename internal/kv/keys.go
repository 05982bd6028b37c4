package kv

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/errors"
)

// Keys are laid out as follows:
//
//	__wire.stream <sep> name           stream descriptor
//	s <sep> name <sep> 0 <seq>         segments, seq is a big-endian uint64
//
// The 0 separates the segment number from the prefix and lets the whole
// stream be bounded by replacing it with 0xff.
const (
	separator    byte = 0x1F
	streamKey         = "__wire.stream"
	streamPrefix      = 's'
)

func validateName(name string) error {
	if name == "" || strings.IndexByte(name, separator) >= 0 {
		return errors.Wrapf(ErrInvalidStreamName, "%q", name)
	}
	return nil
}

func buildStreamKey(name string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(streamKey) + 1 + len(name))
	buf.WriteString(streamKey)
	buf.WriteByte(separator)
	buf.WriteString(name)

	return buf.Bytes()
}

// streamKeyBounds returns the range holding every stream descriptor.
func streamKeyBounds() (lower, upper []byte) {
	lower = append([]byte(streamKey), separator)
	upper = append([]byte(streamKey), separator+1)
	return lower, upper
}

// segmentBounds returns the range holding every segment of a stream.
func segmentBounds(name string) (lower, upper []byte) {
	lower = make([]byte, 0, len(name)+4)
	lower = append(lower, streamPrefix, separator)
	lower = append(lower, name...)
	lower = append(lower, separator, 0)

	upper = append([]byte(nil), lower...)
	upper[len(upper)-1] = 0xff
	return lower, upper
}

// appendSegmentKey appends the key of segment seq to prefix, which must be
// the lower bound returned by segmentBounds.
func appendSegmentKey(prefix []byte, seq uint64) []byte {
	return binary.BigEndian.AppendUint64(prefix, seq)
}
