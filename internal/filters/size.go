// Package filters implements the non-name predicates §5/§6 layer on top
// of glob/regex matching: -size, -mtime/-atime/-ctime, -type, -empty.
package filters

import (
	"fmt"
	"strconv"
)

// sizeUnit maps a -size suffix letter to its byte multiplier.
var sizeUnit = map[byte]int64{
	'c': 1,
	'w': 2,
	'b': 512,
	'k': 1024,
	'K': 1024,
	'M': 1048576,
	'G': 1073741824,
}

// SizeOrder is the comparison a -size expression requests.
type SizeOrder int

const (
	SizeExact SizeOrder = iota
	SizeGreater
	SizeLess
)

// SizePredicate evaluates -size N[cwbkKMG], -size +N[...], -size -N[...].
type SizePredicate struct {
	Order SizeOrder
	Bytes int64
	Unit  int64 // the unit size.Match rounds a file's byte count up to before comparing
}

// ParseSize parses a -size argument. With no suffix, N counts 512-byte
// blocks (rounded up), matching GNU find's default.
func ParseSize(arg string) (SizePredicate, error) {
	if arg == "" {
		return SizePredicate{}, fmt.Errorf("filters: empty -size argument")
	}

	order := SizeExact
	i := 0
	switch arg[0] {
	case '+':
		order, i = SizeGreater, 1
	case '-':
		order, i = SizeLess, 1
	}

	unit := int64(512)
	numEnd := len(arg)
	if m, ok := sizeUnit[arg[len(arg)-1]]; ok {
		unit = m
		numEnd = len(arg) - 1
	}

	if i >= numEnd {
		return SizePredicate{}, fmt.Errorf("filters: invalid -size argument %q", arg)
	}
	n, err := strconv.ParseInt(arg[i:numEnd], 10, 64)
	if err != nil {
		return SizePredicate{}, fmt.Errorf("filters: invalid -size argument %q: %w", arg, err)
	}

	return SizePredicate{Order: order, Bytes: n * unit, Unit: unit}, nil
}

// Match reports whether a file of the given byte size satisfies p. The
// file's size is first rounded up to a whole Unit — GNU find always
// compares in whole units, never fractional bytes, even when the unit is
// 'c' (1, a no-op rounding).
func (p SizePredicate) Match(fileBytes int64) bool {
	unit := p.Unit
	if unit <= 0 {
		unit = 1
	}
	rounded := ((fileBytes + unit - 1) / unit) * unit

	switch p.Order {
	case SizeGreater:
		return rounded > p.Bytes
	case SizeLess:
		return rounded < p.Bytes
	default:
		return rounded == p.Bytes
	}
}
