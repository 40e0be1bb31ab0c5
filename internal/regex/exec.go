package regex

// bitset is a fixed-capacity membership set over state indices, backed by
// a flat []uint64 word array. It never recurses and never grows: the
// executor allocates one sized to Program.NumStates per stepped position.
type bitset struct {
	words []uint64
}

func newBitset(n int) *bitset {
	return &bitset{words: make([]uint64, (n+63)/64)}
}

func (s *bitset) add(id uint16)    { s.words[id/64] |= 1 << (uint(id) % 64) }
func (s *bitset) has(id uint16) bool {
	return s.words[id/64]&(1<<(uint(id)%64)) != 0
}

// isWordByte reports whether b is a "word" character for \b / \B purposes:
// ASCII letters, digits, and underscore.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isWordBoundary(text []byte, pos int) bool {
	before := pos > 0 && isWordByte(text[pos-1])
	after := pos < len(text) && isWordByte(text[pos])
	return before != after
}

// addClosure follows every epsilon transition reachable from id at text
// position pos, adding each visited state (zero-width or consuming) to
// set. It uses an explicit stack rather than recursive calls, per §4.4's
// requirement that the simulator not grow the call stack with pattern
// size — a cycle (e.g. the split introduced by '*') terminates because a
// state already in set is never pushed again.
func addClosure(prog *Program, set *bitset, id uint16, text []byte, pos int) {
	stack := []uint16{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set.has(cur) {
			continue
		}
		set.add(cur)

		st := prog.States[cur]
		switch st.Type {
		case StateSplit:
			stack = append(stack, st.Out, st.Out2)
		case StateGroupStart, StateGroupEnd:
			stack = append(stack, st.Out)
		case StateLineStart:
			if pos == 0 {
				stack = append(stack, st.Out)
			}
		case StateLineEnd:
			if pos == len(text) {
				stack = append(stack, st.Out)
			}
		case StateWordBoundary:
			if isWordBoundary(text, pos) {
				stack = append(stack, st.Out)
			}
		case StateNotWordBoundary:
			if !isWordBoundary(text, pos) {
				stack = append(stack, st.Out)
			}
		case StateMatch, StateLiteral, StateCharClass, StateDot, StateAny:
			// Consuming or accepting states terminate this branch of the
			// closure; the stepping loop below acts on them directly.
		}
	}
}

func execFoldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func matchesLiteral(s State, c byte, fold bool) bool {
	if fold {
		return execFoldByte(s.Literal) == execFoldByte(c)
	}
	return s.Literal == c
}

// matchesClass tests c against the bitmap a StateCharClass state indexes
// into. Case folding for -iregex is baked into the bitmap at compile time
// (setRangeFolded), so no runtime fold is needed here.
func matchesClass(prog *Program, s State, c byte) bool {
	word := prog.Bitmaps[s.BitmapOffset+uint32(c)/32]
	bit := word&(1<<(uint(c)%32)) != 0
	if s.Flags&FlagNegated != 0 {
		return !bit
	}
	return bit
}

// hasMatch reports whether set contains any StateMatch state.
func hasMatch(prog *Program, set *bitset) bool {
	for id := 0; id < prog.NumStates; id++ {
		if prog.States[id].Type == StateMatch && set.has(uint16(id)) {
			return true
		}
	}
	return false
}

// FullMatch reports whether text matches prog in its entirety — anchored
// at both the start and the end regardless of the pattern's own anchor
// flags, per §8's "-regex matches the entire path". It runs a Pike-VM-
// style simulation: at each byte position it holds the epsilon-closure of
// every live thread as a bitset, advances consuming states on the next
// input byte, and recomputes the closure at the new position. Capture
// groups participate in the state graph (StateGroupStart/StateGroupEnd)
// for GPU-ABI fidelity but are not extracted — find -regex only needs
// match/no-match.
func FullMatch(prog *Program, text []byte) bool {
	n := len(text)
	fold := prog.CaseInsensitive()

	cur := newBitset(prog.NumStates)
	addClosure(prog, cur, prog.StartState, text, 0)

	for pos := 0; pos < n; pos++ {
		if isEmpty(cur) {
			return false
		}
		c := text[pos]
		next := newBitset(prog.NumStates)
		for id := 0; id < prog.NumStates; id++ {
			if !cur.has(uint16(id)) {
				continue
			}
			st := prog.States[id]
			switch st.Type {
			case StateLiteral:
				if matchesLiteral(st, c, fold) {
					addClosure(prog, next, st.Out, text, pos+1)
				}
			case StateCharClass:
				if matchesClass(prog, st, c) {
					addClosure(prog, next, st.Out, text, pos+1)
				}
			case StateDot, StateAny:
				addClosure(prog, next, st.Out, text, pos+1)
			}
		}
		cur = next
	}

	return hasMatch(prog, cur)
}

func isEmpty(s *bitset) bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}
