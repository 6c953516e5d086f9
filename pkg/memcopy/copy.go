// Package memcopy implements the overlap-aware byte copy engine shared
// by the fast copier, the traced copier, and the operation-log copier.
// It performs the actual memory move; it never records anything.
package memcopy

import "github.com/oisee/dmatrace/pkg/hostmem"

// Overlaps reports whether dst overlaps src for a count-byte copy: the
// destination is considered to overlap the source when
// src < dst < src + count.
func Overlaps(dst, src, count uint64) bool {
	return src < dst && dst < src+count
}

// Copy performs the byte copy for a (dst, src, count) triple directly
// on mem: backward byte copy on overlap, byte-by-byte forward for
// small counts, and pre/loop/post aligned copy otherwise.
func Copy(mem *hostmem.Memory, dst, src, count uint64) {
	switch {
	case count == 0:
		return
	case Overlaps(dst, src, count):
		copyBackward(mem, dst, src, count)
	case count < 16:
		copyForwardBytes(mem, dst, src, count)
	default:
		copyAligned(mem, dst, src, count)
	}
}

// copyBackward copies from the high end downward, byte by byte, so a
// forward-overlapping copy (dst inside [src, src+count)) never reads a
// byte mtrace's source-capture step hasn't already consumed from the
// original data.
func copyBackward(mem *hostmem.Memory, dst, src, count uint64) {
	for i := count; i > 0; i-- {
		b := mem.ReadByte(src + i - 1)
		mem.WriteByte(dst+i-1, b)
	}
}

func copyForwardBytes(mem *hostmem.Memory, dst, src, count uint64) {
	for i := uint64(0); i < count; i++ {
		mem.WriteByte(dst+i, mem.ReadByte(src+i))
	}
}

// copyAligned copies pre_count bytes forward to destination alignment,
// then the whole aligned qwords, then post_count trailing bytes. The
// qword phase reads src+8*i which may itself be unaligned when
// src_offset != dst_offset; the host is assumed to permit unaligned
// word reads.
func copyAligned(mem *hostmem.Memory, dst, src, count uint64) {
	dstOffset := dst % 8
	var preCount uint64
	if dstOffset > 0 {
		preCount = 8 - dstOffset
	}
	if preCount > count {
		preCount = count
	}

	for i := uint64(0); i < preCount; i++ {
		mem.WriteByte(dst+i, mem.ReadByte(src+i))
	}

	rest := count - preCount
	loopCount := rest / 8
	postCount := rest % 8

	base := preCount
	for i := uint64(0); i < loopCount; i++ {
		off := base + 8*i
		w := readUnalignedWord(mem, src+off)
		mem.WriteWord(dst+off, w)
	}

	postBase := base + 8*loopCount
	for i := uint64(0); i < postCount; i++ {
		mem.WriteByte(dst+postBase+i, mem.ReadByte(src+postBase+i))
	}
}

// readUnalignedWord reads 8 bytes starting at addr as a little-endian
// word, regardless of addr's alignment.
func readUnalignedWord(mem *hostmem.Memory, addr uint64) uint64 {
	var w uint64
	for i := uint64(0); i < 8; i++ {
		w |= uint64(mem.ReadByte(addr+i)) << (8 * i)
	}
	return w
}
