package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofind/gofind/internal/cliargs"
	"github.com/gofind/gofind/internal/filters"
)

// runNonMatchTest evaluates every -type/-size/-mtime/-atime/-ctime/
// -empty/-prune test directly against each candidate's already-collected
// os.FileInfo — these never benefit from GPU dispatch, so they run as a
// plain per-candidate Go loop rather than through the orchestrator.
func runNonMatchTest(tok cliargs.Token, cands []candidate, now time.Time) ([]bool, error) {
	out := make([]bool, len(cands))

	switch tok.Name {
	case "type":
		code, err := filters.ParseType(tok.Arg)
		if err != nil {
			return nil, err
		}
		for i, c := range cands {
			out[i] = code.Match(c.info)
		}

	case "size":
		pred, err := filters.ParseSize(tok.Arg)
		if err != nil {
			return nil, err
		}
		for i, c := range cands {
			out[i] = pred.Match(c.info.Size())
		}

	case "mtime", "atime", "ctime":
		field := map[string]filters.TimeField{
			"mtime": filters.TimeMtime,
			"atime": filters.TimeAtime,
			"ctime": filters.TimeCtime,
		}[tok.Name]
		pred, err := filters.ParseTime(field, tok.Arg)
		if err != nil {
			return nil, err
		}
		for i, c := range cands {
			out[i] = pred.Match(now, timeField(c.info, field))
		}

	case "empty":
		for i, c := range cands {
			entries := 0
			if c.info.IsDir() {
				entries = countDirEntries(c.path)
			}
			out[i] = filters.Empty(c.info, entries)
		}

	case "prune":
		// -prune takes no argument and skips no directories: the walker
		// does not consult it (internal/walk prunes only .gitignore
		// entries, and only when enabled in the config). As a boolean
		// test it always evaluates true so it can still combine with
		// -a/-o/-not like any other primary.
		for i := range cands {
			out[i] = true
		}

	default:
		return nil, fmt.Errorf("unknown test -%s", tok.Name)
	}
	return out, nil
}

func countDirEntries(path string) int {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	return len(entries)
}
