// Package trace implements the traced copier ("mtrace") and the trace
// buffer governor that grows its backing region on demand.
package trace

// Buffer is the ordered sequence of 64-bit trace words a single mtrace
// call appends to. It is write-only and monotonically growing within
// one call: the governor may grow the backing region but must never
// reorder or truncate entries already written.
type Buffer struct {
	words []uint64
}

// NewBuffer allocates a Buffer with room for capacityWords words
// without needing to grow.
func NewBuffer(capacityWords int) *Buffer {
	return &Buffer{words: make([]uint64, 0, capacityWords)}
}

// Append adds one word to the end of the buffer.
func (b *Buffer) Append(w uint64) {
	b.words = append(b.words, w)
}

// Words returns the words written so far, in order.
func (b *Buffer) Words() []uint64 { return b.words }

// Len returns the number of words written so far.
func (b *Buffer) Len() int { return len(b.words) }

// Cap returns the buffer's current capacity in words.
func (b *Buffer) Cap() int { return cap(b.words) }

// grow reallocates the backing array to at least newCapWords words,
// preserving every word already written and its order.
func (b *Buffer) grow(newCapWords int) {
	if newCapWords <= cap(b.words) {
		return
	}
	grown := make([]uint64, len(b.words), newCapWords)
	copy(grown, b.words)
	b.words = grown
}
