package filters

import (
	"fmt"
	"os"
)

// TypeCode is one -type letter code (§6): f, d, l, b, c, p, s.
type TypeCode byte

const (
	TypeFile        TypeCode = 'f'
	TypeDir         TypeCode = 'd'
	TypeSymlink     TypeCode = 'l'
	TypeBlockDevice TypeCode = 'b'
	TypeCharDevice  TypeCode = 'c'
	TypeFIFO        TypeCode = 'p'
	TypeSocket      TypeCode = 's'
)

// ParseType validates a -type argument's single letter code.
func ParseType(arg string) (TypeCode, error) {
	if len(arg) != 1 {
		return 0, fmt.Errorf("filters: -type expects a single letter, got %q", arg)
	}
	switch TypeCode(arg[0]) {
	case TypeFile, TypeDir, TypeSymlink, TypeBlockDevice, TypeCharDevice, TypeFIFO, TypeSocket:
		return TypeCode(arg[0]), nil
	default:
		return 0, fmt.Errorf("filters: unknown -type code %q", arg)
	}
}

// Match reports whether info's mode matches code. Regular symlinks are
// classified by the link itself (os.Lstat's FileMode), never by the
// target it points to — per-entry walkers must Lstat, not Stat.
func (c TypeCode) Match(info os.FileInfo) bool {
	mode := info.Mode()
	switch c {
	case TypeFile:
		return mode.IsRegular()
	case TypeDir:
		return mode.IsDir()
	case TypeSymlink:
		return mode&os.ModeSymlink != 0
	case TypeBlockDevice:
		return mode&os.ModeDevice != 0 && mode&os.ModeCharDevice == 0
	case TypeCharDevice:
		return mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0
	case TypeFIFO:
		return mode&os.ModeNamedPipe != 0
	case TypeSocket:
		return mode&os.ModeSocket != 0
	default:
		return false
	}
}

// Empty reports whether info describes an empty regular file or a
// directory with no entries (§6's -empty). Directory emptiness requires
// reading the directory, so the caller passes dirEntryCount for
// directories; it is ignored for regular files.
func Empty(info os.FileInfo, dirEntryCount int) bool {
	if info.IsDir() {
		return dirEntryCount == 0
	}
	return info.Mode().IsRegular() && info.Size() == 0
}
