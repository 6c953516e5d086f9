// Package mops implements the operation-log copier: it performs the
// same copy as the traced copier but records the sequence of aligned
// memory-access descriptors — address, kind, and block length — rather
// than data.
package mops

import "github.com/oisee/dmatrace/pkg/hostmem"

// Kind tags an op-descriptor's access type. Values and bit position
// are a wire contract consumed by the downstream access-counter
// pipeline.
type Kind uint8

const (
	// AlignedRead is a single aligned read.
	AlignedRead Kind = 0x0C
	// AlignedBlockRead is N consecutive aligned reads.
	AlignedBlockRead Kind = 0x0E
	// AlignedBlockWrite is N consecutive aligned writes.
	AlignedBlockWrite Kind = 0x0F
)

const (
	shiftKind  = 32
	shiftCount = 36
	maskAddr   = 0xFFFFFFFF
	maskKind   = 0xF
)

// ExtraParameterAddr is the emulator-reserved pseudo-address mops reads
// to record the count argument. It must not overlap any real memory
// region; the value here is this implementation's reservation.
const ExtraParameterAddr uint64 = 0xFFFF_FFF8

// Op is one 64-bit op-descriptor: the bitwise sum of an aligned
// address (low 32 bits), a kind tag at bits 32-35, and a block-word
// count at bits 36+.
type Op uint64

// encodeOp packs an aligned address, kind, and access count into an Op.
// n is the number of consecutive aligned words the access covers (1
// for a plain AlignedRead/AlignedBlockWrite of a single word, 2+ for
// a genuine block).
func encodeOp(addr uint64, kind Kind, n uint64) Op {
	return Op((hostmem.Aligned(addr) & maskAddr) | uint64(kind)<<shiftKind | n<<shiftCount)
}

// Addr returns the low-32-bit aligned address.
func (o Op) Addr() uint64 { return uint64(o) & maskAddr }

// Kind returns the 4-bit access-kind tag.
func (o Op) Kind() Kind { return Kind(uint64(o)>>shiftKind) & maskKind }

// Count returns the number of consecutive aligned words the access covers.
func (o Op) Count() uint64 { return uint64(o) >> shiftCount }
