// Package desc implements the DMA memcpy descriptor encoder: the pure,
// constant-time function that maps a (dst, src, count) triple onto the
// packed 64-bit descriptor consumed by the trace and mops copiers.
package desc

// Descriptor is the packed 64-bit result of Encode. Bit 0 is the least
// significant bit. The layout is a wire contract with downstream
// consumers and must not change.
type Descriptor uint64

// Bit layout. Bits 20-28 are reserved and always zero.
const (
	shiftPreCount        = 0
	shiftPostCount       = 3
	shiftPreWrites       = 6
	shiftDstOffset       = 8
	shiftSrcOffset       = 11
	shiftDoubleSrcPre    = 14
	shiftDoubleSrcPost   = 15
	shiftExtraSrcReads   = 16
	shiftSrc64IncByPre   = 18
	shiftUnalignedDstSrc = 19
	shiftPreCountDup     = 29
	shiftLoopCount       = 32

	maskPreCount      = 0x7
	maskPostCount     = 0x7
	maskPreWrites     = 0x3
	maskDstOffset     = 0x7
	maskSrcOffset     = 0x7
	maskExtraSrcReads = 0x3
	maskPreCountDup   = 0x7
	maskLoopCount     = 0xFFFFFFFF
)

// MaxCount is the implementation-defined upper bound on a single copy's
// byte count. Encode's behavior for count >= MaxCount is undefined;
// the caller must keep copies under this bound.
const MaxCount = 1 << 31

// tableCap is the count value above which the lookup table collapses
// the alignment-shape fields onto (dst_offset, src_offset, count mod 8);
// see deriveShape for why this is sound for every count >= tableCap.
const tableCap = 16

// shapeEntry holds every descriptor field that Encode can determine
// from (dst_offset, src_offset, a capped count) alone — everything
// except loop_count and extra_src_reads, which need the true count.
type shapeEntry struct {
	preCount        uint8
	postCount       uint8
	preWrites       uint8
	doubleSrcPre    bool
	doubleSrcPost   bool
	src64IncByPre   bool
	unalignedDstSrc bool
}

// shapeTable is indexed by [dstOffset][srcOffset][tableCount] and is
// built once in init(). It lets Encode avoid re-deriving the
// alignment-decomposition branch structure on every call; only the
// count-dependent loop_count and extra_src_reads are still computed
// directly from count.
var shapeTable [8][8][tableCap + 8]shapeEntry

func init() {
	for dstOffset := uint64(0); dstOffset < 8; dstOffset++ {
		for srcOffset := uint64(0); srcOffset < 8; srcOffset++ {
			for tc := uint64(0); tc < tableCap+8; tc++ {
				shapeTable[dstOffset][srcOffset][tc] = deriveShape(dstOffset, srcOffset, tc)
			}
		}
	}
}

// deriveShape computes the alignment-shape fields for a representative
// count value. For tc >= tableCap it represents every real count c with
// c >= tableCap and c%8 == tc-tableCap: the branch taken depends only
// on whether count exceeds 8-dst_offset (always true once count >=
// tableCap, since 8-dst_offset <= 8), and every downstream field in
// this struct depends only on dst_offset, src_offset, and count%8 once
// that branch is fixed. loop_count itself is NOT part of this table
// because it scales with the true count.
func deriveShape(dstOffset, srcOffset, tc uint64) shapeEntry {
	var count uint64
	if tc < tableCap {
		count = tc
	} else {
		count = tableCap + (tc - tableCap) // any count >= tableCap with count%8 == tc-tableCap
	}

	var preCount, postCount uint64
	switch {
	case dstOffset > 0 && (8-dstOffset) < count:
		preCount = 8 - dstOffset
		rest := count - preCount
		postCount = rest % 8
	case dstOffset > 0:
		preCount = count
		postCount = 0
	default:
		preCount = 0
		postCount = count % 8
	}

	preWrites := uint64(0)
	if preCount > 0 {
		preWrites++
	}
	if postCount > 0 {
		preWrites++
	}

	srcAfterPre := (srcOffset + preCount) % 8
	doubleSrcPre := srcOffset+preCount > 8
	doubleSrcPost := srcAfterPre+postCount > 8
	src64IncByPre := preCount > 0 && srcOffset+preCount >= 8
	unalignedDstSrc := srcOffset != dstOffset

	return shapeEntry{
		preCount:        uint8(preCount),
		postCount:       uint8(postCount),
		preWrites:       uint8(preWrites),
		doubleSrcPre:    doubleSrcPre,
		doubleSrcPost:   doubleSrcPost,
		src64IncByPre:   src64IncByPre,
		unalignedDstSrc: unalignedDstSrc,
	}
}

// tableCount maps a true count onto the table's compressed count axis:
// count itself below tableCap, else tableCap + count mod 8.
func tableCount(count uint64) uint64 {
	if count < tableCap {
		return count
	}
	return tableCap + (count % 8)
}

// Encode derives the descriptor for a (dst, src, count) copy. It is a
// pure function with no per-byte loop: cost is independent of count.
// Behavior is undefined for count >= MaxCount (caller's responsibility).
func Encode(dst, src, count uint64) Descriptor {
	dstOffset := dst % 8
	srcOffset := src % 8

	shape := shapeTable[dstOffset][srcOffset][tableCount(count)]

	var loopCount uint64
	switch {
	case dstOffset > 0 && (8-dstOffset) < count:
		rest := count - uint64(shape.preCount)
		loopCount = rest / 8
	case dstOffset > 0:
		loopCount = 0
	default:
		loopCount = count / 8
	}

	var extraSrcReads uint64
	if count > 0 {
		spanQwords := (src+count-1)/8 - src/8 + 1
		extraSrcReads = spanQwords - loopCount
	}

	var d Descriptor
	d |= Descriptor(uint64(shape.preCount)&maskPreCount) << shiftPreCount
	d |= Descriptor(uint64(shape.postCount)&maskPostCount) << shiftPostCount
	d |= Descriptor(uint64(shape.preWrites)&maskPreWrites) << shiftPreWrites
	d |= Descriptor(dstOffset&maskDstOffset) << shiftDstOffset
	d |= Descriptor(srcOffset&maskSrcOffset) << shiftSrcOffset
	d |= Descriptor(boolBit(shape.doubleSrcPre)) << shiftDoubleSrcPre
	d |= Descriptor(boolBit(shape.doubleSrcPost)) << shiftDoubleSrcPost
	d |= Descriptor(extraSrcReads&maskExtraSrcReads) << shiftExtraSrcReads
	d |= Descriptor(boolBit(shape.src64IncByPre)) << shiftSrc64IncByPre
	d |= Descriptor(boolBit(shape.unalignedDstSrc)) << shiftUnalignedDstSrc
	d |= Descriptor(uint64(shape.preCount)&maskPreCountDup) << shiftPreCountDup
	d |= Descriptor(loopCount&maskLoopCount) << shiftLoopCount

	return d
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// PreCount returns bits 0-2: bytes copied before destination alignment.
func (d Descriptor) PreCount() uint64 { return uint64(d>>shiftPreCount) & maskPreCount }

// PostCount returns bits 3-5: bytes copied after the last full qword.
func (d Descriptor) PostCount() uint64 { return uint64(d>>shiftPostCount) & maskPostCount }

// PreWrites returns bits 6-7: (pre_count>0) + (post_count>0).
func (d Descriptor) PreWrites() uint64 { return uint64(d>>shiftPreWrites) & maskPreWrites }

// DstOffset returns bits 8-10: dst mod 8.
func (d Descriptor) DstOffset() uint64 { return uint64(d>>shiftDstOffset) & maskDstOffset }

// SrcOffset returns bits 11-13: src mod 8.
func (d Descriptor) SrcOffset() uint64 { return uint64(d>>shiftSrcOffset) & maskSrcOffset }

// DoubleSrcPre returns bit 14.
func (d Descriptor) DoubleSrcPre() bool { return (d>>shiftDoubleSrcPre)&1 != 0 }

// DoubleSrcPost returns bit 15.
func (d Descriptor) DoubleSrcPost() bool { return (d>>shiftDoubleSrcPost)&1 != 0 }

// ExtraSrcReads returns bits 16-17: extra aligned source qwords beyond loop_count.
func (d Descriptor) ExtraSrcReads() uint64 {
	return uint64(d>>shiftExtraSrcReads) & maskExtraSrcReads
}

// Src64IncByPre returns bit 18.
func (d Descriptor) Src64IncByPre() bool { return (d>>shiftSrc64IncByPre)&1 != 0 }

// UnalignedDstSrc returns bit 19: src_offset != dst_offset.
func (d Descriptor) UnalignedDstSrc() bool { return (d>>shiftUnalignedDstSrc)&1 != 0 }

// PreCountDup returns bits 29-31, the duplicate of PreCount used by
// mops address arithmetic so it can be extracted with a single shift.
func (d Descriptor) PreCountDup() uint64 { return uint64(d>>shiftPreCountDup) & maskPreCountDup }

// LoopCount returns bits 32-63: whole aligned qwords in the main copy.
func (d Descriptor) LoopCount() uint64 { return uint64(d>>shiftLoopCount) & maskLoopCount }

// WordsWritten returns the number of words mtrace appends for a copy
// with this descriptor: 1 + (pre_count>0) + (post_count>0) +
// loop_count + extra_src_reads.
func (d Descriptor) WordsWritten() uint64 {
	n := uint64(1) + d.PreWrites() + d.LoopCount() + d.ExtraSrcReads()
	return n
}
