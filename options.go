package wire

const (
	// DefaultBufferSize is the buffer size used when Options.BufferSize is
	// not set.
	DefaultBufferSize = 4096

	// DefaultChunkBufferSize is the buffer size of chunked inputs and
	// outputs when Options.BufferSize is not set.
	DefaultChunkBufferSize = 2048

	// Unlimited disables the maximum capacity of an Output.
	Unlimited = -1

	// maxArrayCapacity mirrors the largest slice most platforms can
	// allocate in one piece.
	maxArrayCapacity = 1<<31 - 1 - 8

	// minGrowth is the capacity an empty Output grows to first.
	minGrowth = 16
)

// Options configures an Input or an Output. A nil *Options is valid and
// selects the defaults.
type Options struct {
	// BufferSize is the initial buffer capacity. Defaults to
	// DefaultBufferSize.
	BufferSize int

	// MaxBufferSize caps the growth of an Output buffer. Zero means
	// "same as BufferSize" and Unlimited disables the cap. Ignored by
	// Input.
	MaxBufferSize int

	// Codec selects the fixed-width byte layout. Defaults to Portable.
	Codec PrimitiveCodec

	// FixedLength makes the WriteCompact*/ReadCompact* methods use fixed
	// 4 and 8 byte integers instead of varints.
	FixedLength bool
}

func (o *Options) withDefaults(bufferSize int) Options {
	var opts Options
	if o != nil {
		opts = *o
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = bufferSize
	}
	if opts.MaxBufferSize == 0 {
		opts.MaxBufferSize = opts.BufferSize
	}
	if opts.MaxBufferSize == Unlimited {
		opts.MaxBufferSize = maxArrayCapacity
	}
	if opts.MaxBufferSize < opts.BufferSize {
		opts.MaxBufferSize = opts.BufferSize
	}
	if opts.Codec == nil {
		opts.Codec = Portable
	}

	return opts
}
