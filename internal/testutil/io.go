package testutil

import (
	"io"
)

// ChunkyReader returns a reader handing out at most n bytes of r per Read.
func ChunkyReader(r io.Reader, n int) io.Reader {
	return &chunkyReader{r: r, n: n}
}

type chunkyReader struct {
	r io.Reader
	n int
}

func (c *chunkyReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

// StallingReader never returns data nor an error.
type StallingReader struct{}

func (StallingReader) Read([]byte) (int, error) {
	return 0, nil
}

// CountingWriter records the size of every Write call it receives.
type CountingWriter struct {
	W      io.Writer
	Writes []int
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	c.Writes = append(c.Writes, len(p))
	return c.W.Write(p)
}
