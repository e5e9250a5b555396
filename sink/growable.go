package sink

import "slices"

// Buffer is a growable byte container.
type Buffer interface {
	// Reserve makes room for n more bytes and returns the current contents
	// followed by n writable bytes. The contents do not change until Commit.
	Reserve(n int) []byte

	// Commit appends the first n reserved bytes to the contents.
	Commit(n int)
}

// Bytes is a Buffer backed by a byte slice.
type Bytes []byte

var _ Buffer = (*Bytes)(nil)

func (b *Bytes) Reserve(n int) []byte {
	*b = slices.Grow(*b, n)
	return (*b)[:len(*b)+n]
}

func (b *Bytes) Commit(n int) {
	*b = (*b)[:len(*b)+n]
}

// Growable is a Sink that never truncates. Output is appended after the
// contents the buffer already held when the sink was created.
type Growable struct {
	buf    Buffer
	start  int
	length int
}

var _ Sink = (*Growable)(nil)

// NewGrowable returns a Growable sink appending to buf.
func NewGrowable(buf Buffer) *Growable {
	return &Growable{buf: buf, start: len(buf.Reserve(0))}
}

func (g *Growable) Len() int {
	return g.length
}

// extend reserves n bytes and returns them.
func (g *Growable) extend(n int) []byte {
	p := g.buf.Reserve(n)
	return p[len(p)-n:]
}

func (g *Growable) commit(n int) {
	g.buf.Commit(n)
	g.length += n
}

func (g *Growable) Append(p []byte) {
	copy(g.extend(len(p)), p)
	g.commit(len(p))
}

func (g *Growable) AppendString(s string) {
	copy(g.extend(len(s)), s)
	g.commit(len(s))
}

func (g *Growable) AppendByte(c byte) {
	g.extend(1)[0] = c
	g.commit(1)
}

func (g *Growable) Pad(c byte, n int) {
	if n <= 0 {
		return
	}
	fill(g.extend(n), c, n)
	g.commit(n)
}

func (g *Growable) InsertPad(at int, c byte, n int) {
	if n <= 0 {
		return
	}
	p := g.buf.Reserve(n)
	at += g.start
	copy(p[at+n:], p[at:len(p)-n])
	fill(p[at:], c, n)
	g.commit(n)
}
