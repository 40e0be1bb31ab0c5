// Package walk collects candidate paths from a directory tree for the
// matcher to run against, grounded in the teacher's
// pkg/enum/filesystem.go phase-1 walk (collect paths, then hand off for
// further processing) but simplified to path+stat collection only — this
// package never reads file content.
package walk

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Entry is one walked filesystem entry.
type Entry struct {
	Path  string // as passed to the callback; joined from the walk root
	Info  os.FileInfo
	Depth int // 0 for the root itself
}

// Options controls the walk (§5/§6: -maxdepth, -mindepth, symlink and
// hidden-file handling, .gitignore-aware pruning).
type Options struct {
	MaxDepth         int // -1 means unlimited
	MinDepth         int
	FollowSymlinks   bool // non-goal by default; never follows loops either way
	IncludeHidden    bool
	RespectGitignore bool

	// OnError, if set, is called for every I/O error filepath.Walk reports
	// mid-traversal (a stat failure on an entry, a readdir failure on a
	// directory — e.g. a permission-denied subtree). Walk itself never
	// aborts because of one of these: the offending directory is pruned
	// (or the offending file skipped) and the walk continues. Callers use
	// OnError to record that something was missed, so the run can still
	// exit 1 after printing whatever matches it did find (§6).
	OnError func(path string, err error)
}

// DefaultOptions matches GNU find's default behavior: unlimited depth,
// hidden entries included, symlinks not followed, .gitignore ignored.
func DefaultOptions() Options {
	return Options{MaxDepth: -1, MinDepth: 0, IncludeHidden: true}
}

// Walk walks root, invoking visit for every entry (including root itself
// at depth 0) that Options permits. Returning filepath.SkipDir from visit
// prunes a directory exactly as it does for filepath.WalkDir.
func Walk(ctx context.Context, root string, opts Options, visit func(Entry) error) error {
	var ignore *gitignore.GitIgnore
	if opts.RespectGitignore {
		if path := filepath.Join(root, ".gitignore"); fileExists(path) {
			ignore, _ = gitignore.CompileIgnoreFile(path)
		}
	}

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// filepath.Walk hands us the path's own stat error (if Lstat on
			// path itself failed) or a parent directory's readdir error (if
			// info describes a directory whose contents couldn't be listed).
			// Either way this entry or subtree is unreachable, not the whole
			// walk: record it and prune rather than returning err, which
			// filepath.Walk would otherwise treat as fatal and abort on.
			if opts.OnError != nil {
				opts.OnError(path, err)
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth

		if info.IsDir() && path != root {
			if !opts.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			if ignore != nil && matchesIgnore(ignore, root, path) {
				return filepath.SkipDir
			}
			if opts.MaxDepth >= 0 && depth > opts.MaxDepth {
				return filepath.SkipDir
			}
		}

		// A symlink itself is still reported below (it satisfies -type l);
		// filepath.Walk never follows it into a directory unless opts asks
		// to, which this walker does not implement (non-goal).

		if path != root && !opts.IncludeHidden && isHidden(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if depth < opts.MinDepth {
			return nil
		}
		if opts.MaxDepth >= 0 && depth > opts.MaxDepth {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		return visit(Entry{Path: path, Info: info, Depth: depth})
	})
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func matchesIgnore(ignore *gitignore.GitIgnore, root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return ignore.MatchesPath(rel)
}
