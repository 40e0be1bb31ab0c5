package filters

import (
	"testing"
	"time"
)

func TestParseSizeSuffixes(t *testing.T) {
	cases := []struct {
		arg   string
		bytes int64
		order SizeOrder
	}{
		{"10c", 10, SizeExact},
		{"+1k", 1024, SizeGreater},
		{"-2M", 2 * 1048576, SizeLess},
		{"5", 5 * 512, SizeExact},
		{"1G", 1073741824, SizeExact},
	}
	for _, c := range cases {
		p, err := ParseSize(c.arg)
		if err != nil {
			t.Fatalf("ParseSize(%q): %v", c.arg, err)
		}
		if p.Bytes != c.bytes || p.Order != c.order {
			t.Errorf("ParseSize(%q) = {%d %v}, want {%d %v}", c.arg, p.Bytes, p.Order, c.bytes, c.order)
		}
	}
}

func TestSizeMatchRoundsUpToUnit(t *testing.T) {
	p, err := ParseSize("1k")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Match(1) {
		t.Fatal("1 byte should round up to 1 block of 1k and match exactly 1k")
	}
	if p.Match(2048) {
		t.Fatal("2048 bytes should not match exactly 1k")
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, arg := range []string{"", "+", "abc", "k"} {
		if _, err := ParseSize(arg); err == nil {
			t.Errorf("ParseSize(%q) expected error", arg)
		}
	}
}

func TestTimePredicateDayBuckets(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	threeDaysAgo := now.Add(-3 * 24 * time.Hour)

	exact, err := ParseTime(TimeMtime, "3")
	if err != nil {
		t.Fatal(err)
	}
	if !exact.Match(now, threeDaysAgo) {
		t.Fatal("expected exact 3-day-old file to match -mtime 3")
	}

	older, err := ParseTime(TimeMtime, "+2")
	if err != nil {
		t.Fatal(err)
	}
	if !older.Match(now, threeDaysAgo) {
		t.Fatal("expected 3-day-old file to match -mtime +2")
	}

	younger, err := ParseTime(TimeMtime, "-5")
	if err != nil {
		t.Fatal(err)
	}
	if !younger.Match(now, threeDaysAgo) {
		t.Fatal("expected 3-day-old file to match -mtime -5")
	}
}

func TestParseType(t *testing.T) {
	if _, err := ParseType("x"); err == nil {
		t.Fatal("expected error for unknown type code")
	}
	if _, err := ParseType("ff"); err == nil {
		t.Fatal("expected error for multi-character type code")
	}
	c, err := ParseType("d")
	if err != nil || c != TypeDir {
		t.Fatalf("ParseType(\"d\") = %v, %v", c, err)
	}
}
