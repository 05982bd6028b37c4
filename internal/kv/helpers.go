package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// get returns a copy of the value associated with the given key. If not
// found, returns pebble.ErrNotFound.
func get(r pebble.Reader, k []byte) ([]byte, error) {
	value, closer, err := r.Get(k)
	if err != nil {
		return nil, err
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

// exists returns whether a key exists and is visible by the reader.
func exists(r pebble.Reader, k []byte) (bool, error) {
	_, closer, err := r.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}

		return false, err
	}
	err = closer.Close()
	if err != nil {
		return false, err
	}
	return true, nil
}

func stat(r pebble.Reader, name string) (*StreamInfo, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	v, err := get(r, buildStreamKey(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrStreamNotFound, "%q", name)
		}
		return nil, err
	}

	si := StreamInfo{Name: name}
	if err := si.decode(v); err != nil {
		return nil, err
	}
	return &si, nil
}

func streams(r pebble.Reader) ([]StreamInfo, error) {
	lower, upper := streamKeyBounds()
	it := r.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})

	var list []StreamInfo
	for it.First(); it.Valid(); it.Next() {
		si := StreamInfo{Name: string(it.Key()[len(lower):])}
		if err := si.decode(it.Value()); err != nil {
			_ = it.Close()
			return nil, err
		}
		list = append(list, si)
	}

	if err := it.Close(); err != nil {
		return nil, err
	}
	return list, nil
}

func newReader(r pebble.Reader, name string) (*StreamReader, error) {
	si, err := stat(r, name)
	if err != nil {
		return nil, err
	}

	// Only the segments counted by the descriptor belong to the stream.
	lower, _ := segmentBounds(name)
	upper := appendSegmentKey(append([]byte(nil), lower...), uint64(si.Segments))
	return &StreamReader{
		it: r.NewIter(&pebble.IterOptions{
			LowerBound: lower,
			UpperBound: upper,
		}),
	}, nil
}
