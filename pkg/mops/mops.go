package mops

import (
	"github.com/oisee/dmatrace/pkg/desc"
	"github.com/oisee/dmatrace/pkg/hostmem"
	"github.com/oisee/dmatrace/pkg/memcopy"
)

// boolCount renders a bool as 0/1 for use in block-length arithmetic,
// e.g. the aligned-bulk block length's "loop_count + unaligned_dst_src".
func boolCount(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Mops performs the operation-logged copy: one op-descriptor per
// access, followed by the actual byte copy. It returns the number of
// entries appended: 1 when count==0, else 1 + 2*(pre_count>0) +
// 2*(post_count>0) + (loop_count>0) + 1.
func Mops(mem *hostmem.Memory, ob *Buffer, dst, src, count uint64) int {
	d := desc.Encode(dst, src, count)
	start := ob.Len()

	// Step 1: parameter read, always emitted.
	ob.Append(encodeOp(ExtraParameterAddr, AlignedRead, 1))

	if count == 0 {
		return ob.Len() - start
	}

	preCount := d.PreCountDup()
	postCount := d.PostCount()
	loopCount := d.LoopCount()

	// Step 3: pre-alignment bytes.
	if preCount > 0 {
		ob.Append(encodeOp(dst, AlignedRead, 1))
		if d.DoubleSrcPre() {
			ob.Append(encodeOp(src, AlignedBlockRead, 2))
		} else {
			ob.Append(encodeOp(src, AlignedRead, 1))
		}
	}

	// Step 4: post-alignment bytes.
	if postCount > 0 {
		ob.Append(encodeOp(dst+count-1, AlignedRead, 1))
		postSrcAddr := src + preCount + 8*loopCount
		if d.DoubleSrcPost() {
			ob.Append(encodeOp(postSrcAddr, AlignedBlockRead, 2))
		} else {
			ob.Append(encodeOp(postSrcAddr, AlignedRead, 1))
		}
	}

	// Step 5: the aligned bulk. When src and dst differ in alignment,
	// the loop touches one additional source qword still covered by
	// this single block record.
	if loopCount > 0 {
		blockLen := loopCount + boolCount(d.UnalignedDstSrc())
		base := src + preCount
		if d.Src64IncByPre() {
			base += 8
		}
		ob.Append(encodeOp(base, AlignedBlockRead, blockLen))
	}

	// Step 6: the destination write, covering both the aligned loop
	// and any pre/post bytes folded into the same word.
	ob.Append(encodeOp(dst, AlignedBlockWrite, loopCount+d.PreWrites()))

	// Step 7: perform the actual byte copy.
	memcopy.Copy(mem, dst, src, count)

	return ob.Len() - start
}
