/*
Package wire implements a buffered binary codec for primitive values,
strings and arrays, over byte slices or Go streams.

Input and Output

An Output encodes values into a buffer. Without a writer the buffer grows
on demand, up to a configurable maximum capacity, and the encoded bytes are
obtained with ToBytes. With a writer, the buffer is flushed each time it
fills up and once more on Flush or Close.

An Input decodes values from a buffer. When bound to a reader, the buffer
is refilled as needed: already consumed bytes are discarded and the
remaining ones moved to the front. A value larger than the buffer cannot
be read and fails with ErrBufferTooSmall; reading past the end of data
fails with ErrBufferUnderflow.

Encodings

Fixed-width integers and floats are written using a PrimitiveCodec:
Portable (least significant byte first, the default) or Native (host byte
order). Both ends of a stream must use the same codec.

Varints store 7 bits per byte, least significant group first, with the
high bit set on every byte but the last. 32-bit values take 1 to 5 bytes
and 64-bit values 1 to 9, the ninth byte carrying 8 bits. When
optimizePositive is false, values are zig-zag encoded so that small
negative numbers stay short.

Strings are either null (0x80), empty (0x81), ASCII (the bytes as is, the
last one with its high bit set) or general: the number of UTF-16 code units
plus one, as a varint with its flag bit set, followed by each code unit in
one to three bytes.

Chunks

OutputChunked and InputChunked frame a stream into length prefixed chunks,
letting a reader skip whatever is left of a logical chunk with NextChunk.
*/
package wire
