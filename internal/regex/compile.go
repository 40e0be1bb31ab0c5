package regex

import "fmt"

// patch identifies one dangling Out (false) or Out2 (true) field that the
// builder must fill in once the fragment's successor state is known.
type patch struct {
	state uint16
	out2  bool
}

// fragment is a partially built piece of NFA: an entry state and the list
// of outgoing pointers still awaiting a target (Russ Cox's
// construct-by-fragment-and-backpatch technique, the same shape the
// corpus's Thompson-NFA engines build their engines with).
type fragment struct {
	start uint16
	out   []patch
}

// builder accumulates states for one compilation and owns the bitmap pool.
type builder struct {
	states     []State
	bitmaps    []uint32
	caseFold   bool
	groupCount int
}

func (b *builder) push(s State) uint16 {
	idx := len(b.states)
	b.states = append(b.states, s)
	return uint16(idx)
}

func (b *builder) patchAll(ps []patch, target uint16) {
	for _, p := range ps {
		if p.out2 {
			b.states[p.state].Out2 = target
		} else {
			b.states[p.state].Out = target
		}
	}
}

// Compile lowers src into a GPU-executable Program per §4.2/§4.4. caseFold
// requests ASCII case-insensitive matching (set for -iregex).
func Compile(src string, caseFold bool) (*Program, error) {
	ast, groups, anchorSt, anchorEn, err := Parse(src)
	if err != nil {
		return nil, err
	}

	b := &builder{caseFold: caseFold, groupCount: groups}
	frag, err := b.compileNode(ast)
	if err != nil {
		return nil, err
	}

	matchState := b.push(State{Type: StateMatch})
	b.patchAll(frag.out, matchState)

	if len(b.states) > MaxStates {
		return nil, fmt.Errorf("regex: pattern compiles to %d states, exceeds MaxStates=%d", len(b.states), MaxStates)
	}

	flags := uint32(0)
	if anchorSt {
		flags |= FlagAnchoredStart
	}
	if anchorEn {
		flags |= FlagAnchoredEnd
	}
	if caseFold {
		flags |= FlagCaseInsensitive
	}

	return &Program{
		NumStates:  len(b.states),
		StartState: frag.start,
		NumGroups:  groups,
		Flags:      flags,
		States:     b.states,
		Bitmaps:    b.bitmaps,
	}, nil
}

func (b *builder) compileNode(n *node) (fragment, error) {
	switch n.kind {
	case nLiteral:
		return b.compileLiteral(n.lit), nil
	case nDot:
		idx := b.push(State{Type: StateDot})
		return fragment{start: idx, out: []patch{{idx, false}}}, nil
	case nClass:
		return b.compileClass(n), nil
	case nLineStart:
		idx := b.push(State{Type: StateLineStart})
		return fragment{start: idx, out: []patch{{idx, false}}}, nil
	case nLineEnd:
		idx := b.push(State{Type: StateLineEnd})
		return fragment{start: idx, out: []patch{{idx, false}}}, nil
	case nWordBoundary:
		idx := b.push(State{Type: StateWordBoundary})
		return fragment{start: idx, out: []patch{{idx, false}}}, nil
	case nNotWordBoundary:
		idx := b.push(State{Type: StateNotWordBoundary})
		return fragment{start: idx, out: []patch{{idx, false}}}, nil
	case nGroup:
		return b.compileGroup(n)
	case nConcat:
		return b.compileConcat(n)
	case nAlt:
		return b.compileAlt(n)
	case nStar:
		return b.compileStar(n)
	case nPlus:
		return b.compilePlus(n)
	case nQuest:
		return b.compileQuest(n)
	default:
		return fragment{}, fmt.Errorf("regex: unhandled node kind %d", n.kind)
	}
}

func (b *builder) compileLiteral(c byte) fragment {
	idx := b.push(State{Type: StateLiteral, Literal: c})
	return fragment{start: idx, out: []patch{{idx, false}}}
}

func (b *builder) compileClass(n *node) fragment {
	words := make([]uint32, bitmapWords)
	for _, r := range n.ranges {
		lo, hi := r.lo, r.hi
		if b.caseFold {
			setRangeFolded(words, lo, hi)
		} else {
			setRange(words, lo, hi)
		}
	}
	offset := uint32(len(b.bitmaps))
	b.bitmaps = append(b.bitmaps, words...)

	var flags uint8
	if n.negated {
		flags |= FlagNegated
	}
	idx := b.push(State{Type: StateCharClass, Flags: flags, BitmapOffset: offset})
	return fragment{start: idx, out: []patch{{idx, false}}}
}

// setRange sets bits lo..hi (inclusive) in a 256-bit/8-word bitmap.
func setRange(words []uint32, lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		words[c/32] |= 1 << uint(c%32)
	}
}

// setRangeFolded sets lo..hi and their ASCII case-mirror at compile time,
// so the executor never needs to fold bytes against a class bitmap.
func setRangeFolded(words []uint32, lo, hi byte) {
	setRange(words, lo, hi)
	for c := int(lo); c <= int(hi); c++ {
		b := byte(c)
		switch {
		case b >= 'A' && b <= 'Z':
			m := b + ('a' - 'A')
			words[m/32] |= 1 << uint(m%32)
		case b >= 'a' && b <= 'z':
			m := b - ('a' - 'A')
			words[m/32] |= 1 << uint(m%32)
		}
	}
}

func (b *builder) compileGroup(n *node) (fragment, error) {
	startIdx := b.push(State{Type: StateGroupStart, GroupIdx: uint8(n.groupIdx)})
	inner, err := b.compileNode(n.sub)
	if err != nil {
		return fragment{}, err
	}
	b.states[startIdx].Out = inner.start
	endIdx := b.push(State{Type: StateGroupEnd, GroupIdx: uint8(n.groupIdx)})
	b.patchAll(inner.out, endIdx)
	return fragment{start: startIdx, out: []patch{{endIdx, false}}}, nil
}

func (b *builder) compileConcat(n *node) (fragment, error) {
	if len(n.children) == 0 {
		// Empty concat: a split whose both epsilon arms lead to the same
		// successor, matching zero bytes.
		idx := b.push(State{Type: StateSplit})
		return fragment{start: idx, out: []patch{{idx, false}, {idx, true}}}, nil
	}
	first, err := b.compileNode(n.children[0])
	if err != nil {
		return fragment{}, err
	}
	out := first.out
	start := first.start
	for _, child := range n.children[1:] {
		next, err := b.compileNode(child)
		if err != nil {
			return fragment{}, err
		}
		b.patchAll(out, next.start)
		out = next.out
	}
	return fragment{start: start, out: out}, nil
}

func (b *builder) compileAlt(n *node) (fragment, error) {
	var out []patch
	// Build split states right-to-left so each split's Out2 points at the
	// next alternative's split (or that alternative itself, for the last
	// pair), and Out points at the compiled branch.
	frags := make([]fragment, len(n.children))
	for i, child := range n.children {
		f, err := b.compileNode(child)
		if err != nil {
			return fragment{}, err
		}
		frags[i] = f
		out = append(out, f.out...)
	}

	start := frags[len(frags)-1].start
	for i := len(frags) - 2; i >= 0; i-- {
		splitIdx := b.push(State{Type: StateSplit, Out: frags[i].start, Out2: start})
		start = splitIdx
	}
	return fragment{start: start, out: out}, nil
}

func (b *builder) compileStar(n *node) (fragment, error) {
	splitIdx := b.push(State{Type: StateSplit})
	inner, err := b.compileNode(n.sub)
	if err != nil {
		return fragment{}, err
	}
	b.states[splitIdx].Out = inner.start
	b.patchAll(inner.out, splitIdx)
	return fragment{start: splitIdx, out: []patch{{splitIdx, true}}}, nil
}

func (b *builder) compilePlus(n *node) (fragment, error) {
	inner, err := b.compileNode(n.sub)
	if err != nil {
		return fragment{}, err
	}
	splitIdx := b.push(State{Type: StateSplit, Out: inner.start})
	b.patchAll(inner.out, splitIdx)
	return fragment{start: inner.start, out: []patch{{splitIdx, true}}}, nil
}

func (b *builder) compileQuest(n *node) (fragment, error) {
	splitIdx := b.push(State{Type: StateSplit})
	inner, err := b.compileNode(n.sub)
	if err != nil {
		return fragment{}, err
	}
	b.states[splitIdx].Out = inner.start
	out := append([]patch{{splitIdx, true}}, inner.out...)
	return fragment{start: splitIdx, out: out}, nil
}
