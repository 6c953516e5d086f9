package trace

import (
	"github.com/oisee/dmatrace/pkg/desc"
	"github.com/oisee/dmatrace/pkg/hostmem"
	"github.com/oisee/dmatrace/pkg/memcopy"
)

// MTrace performs a traced copy: it derives the descriptor, captures
// the destination pre/post images and every source word the copy
// touches — all before the actual byte move begins — appends them to
// buf in order, then performs the copy.
//
// It returns the number of words appended:
// 1 + (pre_count>0) + (post_count>0) + loop_count + extra_src_reads.
func MTrace(mem *hostmem.Memory, gov *Governor, buf *Buffer, dst, src, count uint64) (int, error) {
	d := desc.Encode(dst, src, count)

	if gov != nil {
		if err := gov.Ensure(buf); err != nil {
			return 0, err
		}
	}

	start := buf.Len()
	buf.Append(uint64(d))

	preCount := d.PreCount()
	postCount := d.PostCount()

	// Step 2: destination pre-image, read before any write to dst.
	if preCount > 0 {
		buf.Append(mem.ReadWord(hostmem.Aligned(dst)))
	}

	// Step 3: destination post-image, likewise read before any write.
	if postCount > 0 {
		buf.Append(mem.ReadWord(hostmem.Aligned(dst + count - 1)))
	}

	// Step 4: every aligned source qword covering [src, src+count), in
	// ascending order, read before the copy begins so overlapping
	// copies can't clobber a word this call still needs to record.
	numSrcWords := d.LoopCount() + d.ExtraSrcReads()
	srcBase := hostmem.Aligned(src)
	for i := uint64(0); i < numSrcWords; i++ {
		buf.Append(mem.ReadWord(srcBase + 8*i))
	}

	// Step 5: perform the actual byte copy.
	memcopy.Copy(mem, dst, src, count)

	return buf.Len() - start, nil
}
