package wire

import (
	"io"
	"sync"
)

// OutputPool recycles heap allocated Outputs. It is safe for concurrent
// use; the Outputs it returns are not.
type OutputPool struct {
	pool sync.Pool
}

// NewOutputPool returns a pool creating Outputs with opts.
func NewOutputPool(opts *Options) *OutputPool {
	var o *Options
	if opts != nil {
		cp := *opts
		o = &cp
	}

	var p OutputPool
	p.pool.New = func() any {
		return NewOutput(o)
	}
	return &p
}

// Get returns an empty Output bound to w, which may be nil.
func (p *OutputPool) Get(w io.Writer) *Output {
	out := p.pool.Get().(*Output)
	out.SetWriter(w)
	return out
}

// Put returns out to the pool. out must not be used afterwards.
func (p *OutputPool) Put(out *Output) {
	if out.Direct() {
		return
	}
	out.SetWriter(nil)
	p.pool.Put(out)
}

// InputPool recycles heap allocated Inputs bound to readers.
type InputPool struct {
	pool sync.Pool
}

// NewInputPool returns a pool creating Inputs with opts.
func NewInputPool(opts *Options) *InputPool {
	var o *Options
	if opts != nil {
		cp := *opts
		o = &cp
	}

	var p InputPool
	p.pool.New = func() any {
		return NewInputReader(nil, o)
	}
	return &p
}

// Get returns an Input reading from r.
func (p *InputPool) Get(r io.Reader) *Input {
	in := p.pool.Get().(*Input)
	in.SetReader(r)
	return in
}

// Put returns in to the pool. in must not be used afterwards.
func (p *InputPool) Put(in *Input) {
	if in.Direct() {
		return
	}
	in.SetReader(nil)
	p.pool.Put(in)
}
