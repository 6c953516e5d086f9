package desc

import "testing"

// TestEncodeScenarios exercises a table of concrete alignment/count
// combinations against their expected decomposition and flags.
func TestEncodeScenarios(t *testing.T) {
	tests := []struct {
		name                                    string
		dst, src, count                         uint64
		preCount, loopCount, postCount          uint64
		dstOffset, srcOffset                    uint64
		doubleSrcPre, doubleSrcPost             bool
		unalignedDstSrc, src64IncByPre          bool
	}{
		{
			name: "A: empty copy, aligned",
			dst: 0, src: 0, count: 0,
			preCount: 0, loopCount: 0, postCount: 0,
			dstOffset: 0, srcOffset: 0,
		},
		{
			name: "B: one aligned qword",
			dst: 0, src: 0, count: 8,
			preCount: 0, loopCount: 1, postCount: 0,
			dstOffset: 0, srcOffset: 0,
		},
		{
			name: "C: single byte, far dst offset",
			dst: 7, src: 0, count: 1,
			preCount: 1, loopCount: 0, postCount: 0,
			dstOffset: 7, srcOffset: 0,
			unalignedDstSrc: true,
		},
		{
			name: "D: small straddling copy",
			dst: 3, src: 5, count: 10,
			preCount: 5, loopCount: 0, postCount: 5,
			dstOffset: 3, srcOffset: 5,
			doubleSrcPre: true, unalignedDstSrc: true, src64IncByPre: true,
		},
		{
			name: "E: large aligned copy",
			dst: 0, src: 0, count: 100,
			preCount: 0, loopCount: 12, postCount: 4,
			dstOffset: 0, srcOffset: 0,
		},
		{
			name: "F: large unaligned copy",
			dst: 3, src: 5, count: 100,
			preCount: 5, loopCount: 11, postCount: 7,
			dstOffset: 3, srcOffset: 5,
			doubleSrcPre: true, doubleSrcPost: true, unalignedDstSrc: true, src64IncByPre: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Encode(tc.dst, tc.src, tc.count)

			if got := d.PreCount(); got != tc.preCount {
				t.Errorf("PreCount = %d, want %d", got, tc.preCount)
			}
			if got := d.LoopCount(); got != tc.loopCount {
				t.Errorf("LoopCount = %d, want %d", got, tc.loopCount)
			}
			if got := d.PostCount(); got != tc.postCount {
				t.Errorf("PostCount = %d, want %d", got, tc.postCount)
			}
			if got := d.DstOffset(); got != tc.dstOffset {
				t.Errorf("DstOffset = %d, want %d", got, tc.dstOffset)
			}
			if got := d.SrcOffset(); got != tc.srcOffset {
				t.Errorf("SrcOffset = %d, want %d", got, tc.srcOffset)
			}
			if got := d.DoubleSrcPre(); got != tc.doubleSrcPre {
				t.Errorf("DoubleSrcPre = %v, want %v", got, tc.doubleSrcPre)
			}
			if got := d.DoubleSrcPost(); got != tc.doubleSrcPost {
				t.Errorf("DoubleSrcPost = %v, want %v", got, tc.doubleSrcPost)
			}
			if got := d.UnalignedDstSrc(); got != tc.unalignedDstSrc {
				t.Errorf("UnalignedDstSrc = %v, want %v", got, tc.unalignedDstSrc)
			}
			if got := d.Src64IncByPre(); got != tc.src64IncByPre {
				t.Errorf("Src64IncByPre = %v, want %v", got, tc.src64IncByPre)
			}
			if got := d.PreCountDup(); got != tc.preCount {
				t.Errorf("PreCountDup = %d, want %d", got, tc.preCount)
			}

			wantPreCount := tc.preCount + 8*tc.loopCount + tc.postCount
			if wantPreCount != tc.count {
				t.Fatalf("test case inconsistent: pre+8*loop+post = %d, count = %d", wantPreCount, tc.count)
			}
		})
	}
}

// TestDecompositionSoundness checks, across a dense sweep of addresses
// and counts, that pre_count + 8*loop_count + post_count = count with
// pre_count and post_count confined to [0,7].
func TestDecompositionSoundness(t *testing.T) {
	for dst := uint64(0); dst < 16; dst++ {
		for src := uint64(0); src < 16; src++ {
			for count := uint64(0); count < 200; count++ {
				d := Encode(dst, src, count)
				pre, loop, post := d.PreCount(), d.LoopCount(), d.PostCount()
				if pre > 7 || post > 7 {
					t.Fatalf("dst=%d src=%d count=%d: pre=%d post=%d out of [0,7]", dst, src, count, pre, post)
				}
				if got := pre + 8*loop + post; got != count {
					t.Fatalf("dst=%d src=%d count=%d: pre+8*loop+post=%d, want %d", dst, src, count, got, count)
				}
			}
		}
	}
}

// TestDeterminism checks that Encode is pure and deterministic.
func TestDeterminism(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := Encode(37, 101, 173)
		b := Encode(37, 101, 173)
		if a != b {
			t.Fatalf("Encode not deterministic: %x != %x", a, b)
		}
	}
}

// TestWordsWrittenLaw checks WordsWritten directly against its
// defining formula for every descriptor in the swept range.
func TestWordsWrittenLaw(t *testing.T) {
	for dst := uint64(0); dst < 8; dst++ {
		for src := uint64(0); src < 8; src++ {
			for count := uint64(0); count < 64; count++ {
				d := Encode(dst, src, count)
				want := uint64(1) + d.PreWrites() + d.LoopCount() + d.ExtraSrcReads()
				if got := d.WordsWritten(); got != want {
					t.Fatalf("dst=%d src=%d count=%d: WordsWritten=%d, want %d", dst, src, count, got, want)
				}
			}
		}
	}
}

// TestExtraSrcReadsFitsField checks that extra_src_reads, derived
// straight from the span-of-touched-source-qwords formula, never
// exceeds the 2-bit field's range. Scenario F (dst=3, src=5, count=100)
// is a concrete case that lands on 3, so 3 is reachable in practice and
// not reserved.
func TestExtraSrcReadsFitsField(t *testing.T) {
	for dst := uint64(0); dst < 8; dst++ {
		for src := uint64(0); src < 8; src++ {
			for count := uint64(0); count < 4096; count++ {
				d := Encode(dst, src, count)
				var extra uint64
				if count > 0 {
					extra = (src+count-1)/8 - src/8 + 1 - d.LoopCount()
				}
				if extra > 3 {
					t.Fatalf("dst=%d src=%d count=%d: extra_src_reads=%d exceeds 2-bit range", dst, src, count, extra)
				}
			}
		}
	}
}
