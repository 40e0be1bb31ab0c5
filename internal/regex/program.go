// Package regex implements the Thompson-NFA regex compiler and executor
// specified in §4.2/§4.4: a parser for the supported grammar, a lowering
// pass to a compact, GPU-executable byte-code, and a bitset-based
// simulator usable from both the CPU reference path and as the model the
// GPU kernels (internal/gpu/metal, internal/gpu/vulkan) implement.
package regex

import "encoding/binary"

// MaxStates is the largest NFA the compiler accepts (§4.4); larger
// patterns are rejected at compile time with a usage error.
const MaxStates = 256

// StateType identifies what an NFA state does with an input byte.
type StateType uint8

const (
	StateLiteral StateType = iota
	StateCharClass
	StateDot
	StateSplit
	StateMatch
	StateGroupStart
	StateGroupEnd
	StateWordBoundary
	StateNotWordBoundary
	StateLineStart
	StateLineEnd
	StateAny
)

// State flag bits.
const (
	// FlagNegated inverts a StateCharClass bitmap test.
	FlagNegated uint8 = 1 << iota
)

// State is the fixed 12-byte GPU-executable record from §3:
// {type, flags, out, out2, literal, group_idx, bitmap_offset}.
type State struct {
	Type         StateType
	Flags        uint8
	Out          uint16
	Out2         uint16
	Literal      byte
	GroupIdx     uint8
	BitmapOffset uint32
}

// Header flags, hoisted from the pattern when anchors appear at the top
// level of the regex (§4.2).
const (
	FlagAnchoredStart uint32 = 1 << iota
	FlagAnchoredEnd
	FlagCaseInsensitive
)

// bitmapWords is the number of 32-bit words in one character-class
// bitmap (256 bits / 32 = 8 words per §3).
const bitmapWords = 8

// Program is a compiled, immutable regex value: the state table plus the
// bitmap pool every StateCharClass state's BitmapOffset indexes into. A
// Program is stateless and safe to share across concurrent matches; the
// orchestrator and every backend pass it by reference.
type Program struct {
	NumStates  int
	StartState uint16
	NumGroups  int
	Flags      uint32
	States     []State
	Bitmaps    []uint32 // flat pool, bitmapWords per class
}

// AnchoredStart reports whether the pattern is anchored at the start.
func (p *Program) AnchoredStart() bool { return p.Flags&FlagAnchoredStart != 0 }

// AnchoredEnd reports whether the pattern is anchored at the end.
func (p *Program) AnchoredEnd() bool { return p.Flags&FlagAnchoredEnd != 0 }

// CaseInsensitive reports whether the pattern folds ASCII case.
func (p *Program) CaseInsensitive() bool { return p.Flags&FlagCaseInsensitive != 0 }

// EncodeStates packs the state table into the little-endian, three-u32
// words-per-state layout the GPU kernels expect (§3, §9): word0 =
// type(u8)|flags(u8)|out(u16) packed low-to-high, word1 = out2(u16)|
// literal(u8)|group_idx(u8), word2 = bitmap_offset(u32).
func (p *Program) EncodeStates() []byte {
	buf := make([]byte, len(p.States)*12)
	for i, s := range p.States {
		off := i * 12
		w0 := uint32(s.Type) | uint32(s.Flags)<<8 | uint32(s.Out)<<16
		w1 := uint32(s.Out2) | uint32(s.Literal)<<16 | uint32(s.GroupIdx)<<24
		binary.LittleEndian.PutUint32(buf[off:], w0)
		binary.LittleEndian.PutUint32(buf[off+4:], w1)
		binary.LittleEndian.PutUint32(buf[off+8:], s.BitmapOffset)
	}
	return buf
}

// EncodeBitmaps packs the bitmap pool as little-endian u32 words.
func (p *Program) EncodeBitmaps() []byte {
	buf := make([]byte, len(p.Bitmaps)*4)
	for i, w := range p.Bitmaps {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}
