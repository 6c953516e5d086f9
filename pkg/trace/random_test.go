package trace

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

// TestMTraceRandomizedProperties runs MTrace over many randomly chosen
// (dst, src, count) triples and checks copy equivalence and that the
// returned count equals the words actually appended, for all of them.
// The PCG generator is seeded
// so a failing run is reproducible.
func TestMTraceRandomizedProperties(t *testing.T) {
	const seed = 0x5EED
	rng := rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))

	const regionSize = 4096
	const maxCount = 300

	for i := 0; i < 2000; i++ {
		mem := seeded(regionSize)

		count := rng.IntN(maxCount)
		dstInt := rng.IntN(regionSize/2-maxCount) + 16
		offset := rng.IntN(2*maxCount+1) - maxCount // may be negative: src may precede or overlap dst
		srcInt := dstInt + offset
		if srcInt < 16 {
			srcInt = 16
		}
		if srcInt+count > regionSize {
			srcInt = regionSize - count
		}

		dst, src := uint64(dstInt), uint64(srcInt)

		want := append([]byte(nil), mem.Bytes()[src:src+uint64(count)]...)

		buf := NewBuffer(64)
		gov := NewGovernor(noGrow)
		n, err := MTrace(mem, gov, buf, dst, src, uint64(count))
		if err != nil {
			t.Fatalf("iter=%d dst=%d src=%d count=%d: MTrace: %v", i, dst, src, count, err)
		}
		if n != buf.Len() {
			t.Fatalf("iter=%d: MTrace returned %d, buffer holds %d", i, n, buf.Len())
		}

		got := mem.Bytes()[dst : dst+uint64(count)]
		if !bytes.Equal(got, want) {
			t.Fatalf("iter=%d dst=%d src=%d count=%d: copy mismatch\n got=%x\nwant=%x", i, dst, src, count, got, want)
		}
	}
}
