// Package dma is the guest-facing entry point: a
// memcpy(dst, src, count) symbol that dispatches to one of the three
// copiers. On the guest side the call is replaced by a CSR marker
// instruction; on the emulator side — modeled here — it dispatches to
// whichever copier the emulator was configured with at load time, not
// by anything the guest requests per call.
package dma

import (
	"github.com/oisee/dmatrace/pkg/hostmem"
	"github.com/oisee/dmatrace/pkg/memcopy"
	"github.com/oisee/dmatrace/pkg/mops"
	"github.com/oisee/dmatrace/pkg/trace"
)

// Mode selects which copier backs Memcpy. It is fixed for the
// lifetime of a Copier: the emulator picks the variant at load time,
// not the guest on a per-call basis.
type Mode int

const (
	// ModeFast performs a plain overlap-aware copy with no recording.
	ModeFast Mode = iota
	// ModeTrace records a data trace (mtrace).
	ModeTrace
	// ModeMops records an operation log (mops).
	ModeMops
)

// Copier dispatches memcpy calls from a single guest program to the
// copier selected by Mode, against one flat host Memory.
type Copier struct {
	Mode Mode
	Mem  *hostmem.Memory

	// Used only in ModeTrace.
	TraceBuf *trace.Buffer
	Governor *trace.Governor

	// Used only in ModeMops.
	OpBuf *mops.Buffer
}

// Memcpy performs dst[0:count] = src[0:count] (respecting overlap)
// using the copier's configured Mode. It returns the number of trace
// words or op-descriptors appended (0 for ModeFast, which appends
// nothing).
func (c *Copier) Memcpy(dst, src, count uint64) (int, error) {
	switch c.Mode {
	case ModeTrace:
		return trace.MTrace(c.Mem, c.Governor, c.TraceBuf, dst, src, count)
	case ModeMops:
		return mops.Mops(c.Mem, c.OpBuf, dst, src, count), nil
	default:
		memcopy.Copy(c.Mem, dst, src, count)
		return 0, nil
	}
}
