package wire

// readArray reads n fixed-width elements. When the whole array fits in the
// buffer it is copied in one go, otherwise it is read one element at a
// time with next.
func readArray[T fixedWidth](in *Input, n int, next func() (T, error)) ([]T, error) {
	s := make([]T, n)
	size := n * widthOf[T]()

	available, err := in.optional(size)
	if err != nil {
		return nil, err
	}
	if available == size {
		in.position += getArray(in.codec, s, in.bytes[in.position:in.position+size])
		return s, nil
	}

	for i := range s {
		s[i], err = next()
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReadBools reads n booleans written by WriteBools.
func (in *Input) ReadBools(n int) ([]bool, error) {
	s := make([]bool, n)
	available, err := in.optional(n)
	if err != nil {
		return nil, err
	}
	if available == n {
		for i, b := range in.bytes[in.position : in.position+n] {
			s[i] = b == 1
		}
		in.position += n
		return s, nil
	}

	for i := range s {
		s[i], err = in.ReadBool()
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (in *Input) ReadInt16s(n int) ([]int16, error) {
	return readArray(in, n, in.ReadInt16)
}

// ReadUint16s reads n 16-bit code units or unsigned shorts.
func (in *Input) ReadUint16s(n int) ([]uint16, error) {
	return readArray(in, n, in.ReadUint16)
}

func (in *Input) ReadInt32s(n int) ([]int32, error) {
	return readArray(in, n, in.ReadInt32)
}

func (in *Input) ReadInt64s(n int) ([]int64, error) {
	return readArray(in, n, in.ReadInt64)
}

func (in *Input) ReadFloat32s(n int) ([]float32, error) {
	return readArray(in, n, in.ReadFloat32)
}

func (in *Input) ReadFloat64s(n int) ([]float64, error) {
	return readArray(in, n, in.ReadFloat64)
}

// ReadVarInt32s reads n varints written by WriteVarInt32s.
func (in *Input) ReadVarInt32s(n int, optimizePositive bool) ([]int32, error) {
	s := make([]int32, n)
	for i := range s {
		v, err := in.ReadVarInt32(optimizePositive)
		if err != nil {
			return nil, err
		}
		s[i] = v
	}
	return s, nil
}

// ReadVarInt64s reads n varints written by WriteVarInt64s.
func (in *Input) ReadVarInt64s(n int, optimizePositive bool) ([]int64, error) {
	s := make([]int64, n)
	for i := range s {
		v, err := in.ReadVarInt64(optimizePositive)
		if err != nil {
			return nil, err
		}
		s[i] = v
	}
	return s, nil
}
