package wire

// writeArray writes the elements of s. When the buffer can hold the whole
// array it is copied in one go, otherwise elements are written one at a
// time with next.
func writeArray[T fixedWidth](o *Output, s []T, next func(T) error) error {
	size := len(s) * widthOf[T]()
	if len(o.bytes) >= size {
		if err := o.require(size); err != nil {
			return err
		}
		o.position += putArray(o.codec, o.bytes[o.position:], s)
		return nil
	}

	for _, v := range s {
		if err := next(v); err != nil {
			return err
		}
	}
	return nil
}

// WriteBools writes one byte per element.
func (o *Output) WriteBools(s []bool) error {
	if len(o.bytes) >= len(s) {
		if err := o.require(len(s)); err != nil {
			return err
		}
		for i, v := range s {
			var b byte
			if v {
				b = 1
			}
			o.bytes[o.position+i] = b
		}
		o.position += len(s)
		return nil
	}

	for _, v := range s {
		if err := o.WriteBool(v); err != nil {
			return err
		}
	}
	return nil
}

func (o *Output) WriteInt16s(s []int16) error {
	return writeArray(o, s, o.WriteInt16)
}

// WriteUint16s writes 16-bit code units or unsigned shorts.
func (o *Output) WriteUint16s(s []uint16) error {
	return writeArray(o, s, o.WriteUint16)
}

func (o *Output) WriteInt32s(s []int32) error {
	return writeArray(o, s, o.WriteInt32)
}

func (o *Output) WriteInt64s(s []int64) error {
	return writeArray(o, s, o.WriteInt64)
}

func (o *Output) WriteFloat32s(s []float32) error {
	return writeArray(o, s, o.WriteFloat32)
}

func (o *Output) WriteFloat64s(s []float64) error {
	return writeArray(o, s, o.WriteFloat64)
}

// WriteVarInt32s writes every element as a varint.
func (o *Output) WriteVarInt32s(s []int32, optimizePositive bool) error {
	for _, v := range s {
		if _, err := o.WriteVarInt32(v, optimizePositive); err != nil {
			return err
		}
	}
	return nil
}

// WriteVarInt64s writes every element as a varint.
func (o *Output) WriteVarInt64s(s []int64, optimizePositive bool) error {
	for _, v := range s {
		if _, err := o.WriteVarInt64(v, optimizePositive); err != nil {
			return err
		}
	}
	return nil
}
