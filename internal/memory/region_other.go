//go:build !unix

package memory

func mmap(size int) ([]byte, bool, error) {
	return make([]byte, size), false, nil
}

func munmap(b []byte) error {
	return nil
}
