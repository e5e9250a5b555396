// Package sink provides the byte destinations the formatter writes into.
//
// A Sink tracks a logical length: the number of bytes the formatter has
// produced so far. A Bounded sink stores at most its capacity and keeps
// counting past it, which is how truncation is reported to callers.
// A Growable sink stores everything.
package sink

// Sink is a destination for formatted output. Positions passed to InsertPad
// are logical offsets, as returned by Len.
type Sink interface {
	Append(p []byte)
	AppendString(s string)
	AppendByte(c byte)

	// Pad appends n copies of c.
	Pad(c byte, n int)

	// InsertPad inserts n copies of c at logical offset at, shifting the
	// bytes after it to the right.
	InsertPad(at int, c byte, n int)

	// Len returns the logical length of the output.
	Len() int
}

// Bounded is a Sink over a caller-provided byte slice. The capacity is
// len(buf); nothing is ever written beyond it.
type Bounded struct {
	buf    []byte
	length int
}

var _ Sink = (*Bounded)(nil)

// NewBounded returns a Bounded sink writing into buf.
func NewBounded(buf []byte) *Bounded {
	return &Bounded{buf: buf}
}

// Len returns the logical length, which may exceed the capacity.
func (b *Bounded) Len() int {
	return b.length
}

// Cap returns the capacity.
func (b *Bounded) Cap() int {
	return len(b.buf)
}

// Truncated reports whether some of the output did not fit.
func (b *Bounded) Truncated() bool {
	return b.length > len(b.buf)
}

// Bytes returns the stored prefix of the output.
func (b *Bounded) Bytes() []byte {
	return b.buf[:b.stored()]
}

// Reset empties the sink, keeping the buffer.
func (b *Bounded) Reset() {
	b.length = 0
}

func (b *Bounded) stored() int {
	return min(b.length, len(b.buf))
}

// room returns the writable part of the buffer.
func (b *Bounded) room() []byte {
	return b.buf[b.stored():]
}

func (b *Bounded) Append(p []byte) {
	copy(b.room(), p)
	b.length += len(p)
}

func (b *Bounded) AppendString(s string) {
	copy(b.room(), s)
	b.length += len(s)
}

func (b *Bounded) AppendByte(c byte) {
	if b.length < len(b.buf) {
		b.buf[b.length] = c
	}
	b.length++
}

func (b *Bounded) Pad(c byte, n int) {
	if n <= 0 {
		return
	}
	fill(b.room(), c, n)
	b.length += n
}

func (b *Bounded) InsertPad(at int, c byte, n int) {
	if n <= 0 {
		return
	}
	stored := b.stored()
	b.length += n
	if at > stored {
		return
	}
	if at+n < len(b.buf) {
		copy(b.buf[at+n:], b.buf[at:stored])
	}
	fill(b.buf[at:], c, n)
}

// fill sets the first n bytes of p to c, clipped to len(p).
func fill(p []byte, c byte, n int) {
	p = p[:min(n, len(p))]
	for i := range p {
		p[i] = c
	}
}
