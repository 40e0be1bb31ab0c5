//go:build linux

package main

import (
	"os"
	"syscall"
	"time"

	"github.com/gofind/gofind/internal/filters"
)

// timeField extracts the requested timestamp from info. mtime is
// portable via ModTime(); atime/ctime read the Timespec fields Linux's
// syscall.Stat_t embeds in Sys().
func timeField(info os.FileInfo, field filters.TimeField) time.Time {
	switch field {
	case filters.TimeAtime:
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			return time.Unix(st.Atim.Sec, st.Atim.Nsec)
		}
	case filters.TimeCtime:
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		}
	}
	return info.ModTime()
}
