package mops

// Buffer is the ordered sequence of op-descriptors a single Mops call
// appends to.
type Buffer struct {
	ops []Op
}

// NewBuffer allocates a Buffer with room for capacity entries.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{ops: make([]Op, 0, capacity)}
}

// Append adds one op-descriptor to the end of the buffer.
func (b *Buffer) Append(o Op) {
	b.ops = append(b.ops, o)
}

// Ops returns the op-descriptors written so far, in order.
func (b *Buffer) Ops() []Op { return b.ops }

// Len returns the number of entries written so far.
func (b *Buffer) Len() int { return len(b.ops) }
