//go:build unix

package memory

import "golang.org/x/sys/unix"

func mmap(size int) ([]byte, bool, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func munmap(b []byte) error {
	return unix.Munmap(b)
}
