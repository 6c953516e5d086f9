package desc

import "fmt"

// Shape is the decoded, human-readable form of a Descriptor. It lets
// callers that only have a Descriptor in hand — a trace file, a debug
// dump — recover the values Encode started from, and lets tests check
// that decoding a descriptor reproduces the inputs that produced it.
type Shape struct {
	PreCount        uint64
	LoopCount       uint64
	PostCount       uint64
	DstOffset       uint64
	SrcOffset       uint64
	DoubleSrcPre    bool
	DoubleSrcPost   bool
	ExtraSrcReads   uint64
	Src64IncByPre   bool
	UnalignedDstSrc bool
}

// Decode unpacks every field of d into a Shape.
func Decode(d Descriptor) Shape {
	return Shape{
		PreCount:        d.PreCount(),
		LoopCount:       d.LoopCount(),
		PostCount:       d.PostCount(),
		DstOffset:       d.DstOffset(),
		SrcOffset:       d.SrcOffset(),
		DoubleSrcPre:    d.DoubleSrcPre(),
		DoubleSrcPost:   d.DoubleSrcPost(),
		ExtraSrcReads:   d.ExtraSrcReads(),
		Src64IncByPre:   d.Src64IncByPre(),
		UnalignedDstSrc: d.UnalignedDstSrc(),
	}
}

// Count reconstructs the original byte count from the decomposition.
func (s Shape) Count() uint64 {
	return s.PreCount + 8*s.LoopCount + s.PostCount
}

// String renders a one-line human-readable summary — a debug aid, not
// a wire format.
func (d Descriptor) String() string {
	s := Decode(d)
	return fmt.Sprintf(
		"pre=%d loop=%d post=%d dst_off=%d src_off=%d double_pre=%v double_post=%v extra=%d inc_by_pre=%v unaligned=%v",
		s.PreCount, s.LoopCount, s.PostCount, s.DstOffset, s.SrcOffset,
		s.DoubleSrcPre, s.DoubleSrcPost, s.ExtraSrcReads, s.Src64IncByPre, s.UnalignedDstSrc,
	)
}
