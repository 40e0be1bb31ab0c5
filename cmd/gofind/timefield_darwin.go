//go:build darwin

package main

import (
	"os"
	"syscall"
	"time"

	"github.com/gofind/gofind/internal/filters"
)

// timeField extracts the requested timestamp from info. mtime is
// portable via ModTime(); atime/ctime read the BSD-style Timespec fields
// Darwin's syscall.Stat_t embeds in Sys().
func timeField(info os.FileInfo, field filters.TimeField) time.Time {
	switch field {
	case filters.TimeAtime:
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
		}
	case filters.TimeCtime:
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			return time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
		}
	}
	return info.ModTime()
}
