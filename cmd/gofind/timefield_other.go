//go:build !darwin && !linux

package main

import (
	"os"
	"time"

	"github.com/gofind/gofind/internal/filters"
)

// timeField falls back to ModTime for every field on platforms without a
// syscall.Stat_t exposing atime/ctime (§5's Non-goals scope this module
// to darwin/linux regardless; this keeps non-Goal platforms compiling).
func timeField(info os.FileInfo, _ filters.TimeField) time.Time {
	return info.ModTime()
}
