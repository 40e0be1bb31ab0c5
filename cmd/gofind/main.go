// Command gofind is a GPU-accelerated, GNU-find-style file name search
// utility (§6). Its expression grammar (-name, -iregex, -a/-o/-not,
// parens) uses single-dash long options that cobra's pflag-based parser
// does not accept, so argument parsing bypasses cobra's flag machinery
// entirely: internal/cliargs pre-scans os.Args, and this command's RunE
// only wires the result into the walker, matcher, and orchestrator.
//
// Exit code is 0 on success (including zero matches) and 1 on any
// argument or I/O error, matching GNU find.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gofind/gofind/internal/cliargs"
	"github.com/gofind/gofind/internal/config"
	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/glob"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/gpu/cpu"
	"github.com/gofind/gofind/internal/gpu/metal"
	"github.com/gofind/gofind/internal/gpu/vulkan"
	"github.com/gofind/gofind/internal/orchestrator"
	"github.com/gofind/gofind/internal/output"
	"github.com/gofind/gofind/internal/regex"
	"github.com/gofind/gofind/internal/selector"
	"github.com/gofind/gofind/internal/walk"
)

// defaultColorMode is used when the invocation carries no --color flag.
const defaultColorMode = "auto"

var rootCmd = &cobra.Command{
	Use:   "gofind [path...] [expression] [--backend scalar|simd|metal|vulkan] [--color auto|always|never]",
	Short: "GPU-accelerated file name search",
	Long: `gofind searches a directory tree for entries whose name or path
matches a glob or regex pattern, choosing between scalar, SIMD, and GPU
(Metal/Vulkan) matching backends depending on workload size.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	// Every gofind expression flag (-name, -type, ...) uses single-dash
	// long-option syntax cobra's pflag parser does not accept, so cobra's
	// own flag parsing is disabled entirely: RunE receives raw argv and
	// hands it to internal/cliargs; --backend/--color are pulled out by
	// splitGlobalFlags before that.
	rootCmd.DisableFlagParsing = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if _, silent := err.(errSilentExit); !silent {
			fmt.Fprintln(os.Stderr, "gofind:", err)
		}
		os.Exit(1)
	}
}

// errSilentExit signals that the run already surfaced whatever it needed
// to (a root-path error printed as it happened, or a mid-walk error that
// GNU find itself never reports) and only needs main to carry exit code 1
// — printing "gofind: ..." again here would be a duplicate or, for the
// mid-walk case, a message the spec requires stay silent (§7).
type errSilentExit struct{}

func (errSilentExit) Error() string { return "" }

func run(cmd *cobra.Command, rawArgs []string) error {
	argv, globalOpts := splitGlobalFlags(rawArgs)

	parsed, err := cliargs.Translate(argv)
	if err != nil {
		return err
	}
	expr, err := cliargs.ParseExpr(parsed.Tokens)
	if err != nil {
		return err
	}

	cfg, _ := config.Load(config.DefaultPath())

	styles := output.NewStyles(output.ShouldColor(output.ColorMode(globalOpts.color), os.Stdout))
	verbose := parsed.Verbose

	backends := map[gpu.Backend]gpu.Driver{
		gpu.BackendScalar: cpu.NewScalar(),
		gpu.BackendSIMD:   cpu.NewSIMD(),
		gpu.BackendMetal:  metal.New(),
		gpu.BackendVulkan: vulkan.New(),
	}
	available := []gpu.Backend{gpu.BackendScalar, gpu.BackendSIMD}
	caps := map[gpu.Backend]gpu.Capability{}
	_ = backends[gpu.BackendScalar].Init(context.Background())
	_ = backends[gpu.BackendSIMD].Init(context.Background())
	for _, b := range []gpu.Backend{gpu.BackendMetal, gpu.BackendVulkan} {
		d := backends[b]
		if err := d.Init(context.Background()); err == nil {
			available = append(available, b)
			caps[b] = d.Capability()
		} else if verbose {
			fmt.Fprintf(os.Stderr, "%s: %v\n", styles.Warn.Sprint("unavailable"), err)
		}
	}

	orch := orchestrator.New(backends, backends[gpu.BackendScalar])
	defer orch.Close()

	requestedBackend := globalOpts.backend
	if requestedBackend == "" {
		requestedBackend = cfg.PreferredBackend
	}
	var forced *gpu.Backend
	if requestedBackend != "" {
		b, ok := parseBackendName(requestedBackend)
		if !ok {
			return fmt.Errorf("unknown --backend %q", requestedBackend)
		}
		forced = &b
	}

	names, hadWalkErr, err := collectCandidates(context.Background(), parsed, cfg)
	if err != nil {
		return err
	}

	matchedSet, err := evaluate(context.Background(), orch, expr, names, available, caps, forced, time.Now())
	if err != nil {
		return err
	}

	w := output.New(os.Stdout, parsed.Print0, parsed.CountOnly)
	for i, keep := range matchedSet {
		if keep {
			if err := w.Emit(names[i].path); err != nil {
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if hadWalkErr {
		// §7: a root-path or mid-walk I/O error still exits 1, but only
		// after every match found despite it has been printed.
		return errSilentExit{}
	}
	return nil
}

type globalOpts struct {
	color   string
	backend string
}

// splitGlobalFlags extracts --backend/--color from rawArgs (cobra left
// them untouched since DisableFlagParsing is set) and returns the
// remaining GNU-find-style argv for cliargs.Translate.
func splitGlobalFlags(rawArgs []string) ([]string, globalOpts) {
	var out []string
	var g globalOpts
	for i := 0; i < len(rawArgs); i++ {
		a := rawArgs[i]
		switch {
		case a == "--backend" && i+1 < len(rawArgs):
			g.backend = rawArgs[i+1]
			i++
		case a == "--color" && i+1 < len(rawArgs):
			g.color = rawArgs[i+1]
			i++
		default:
			out = append(out, a)
		}
	}
	if g.color == "" {
		g.color = defaultColorMode
	}
	return out, g
}

func parseBackendName(name string) (gpu.Backend, bool) {
	switch name {
	case "scalar":
		return gpu.BackendScalar, true
	case "simd":
		return gpu.BackendSIMD, true
	case "metal":
		return gpu.BackendMetal, true
	case "vulkan":
		return gpu.BackendVulkan, true
	default:
		return 0, false
	}
}

// candidate is one walked entry paired with the metadata non-name
// predicates need.
type candidate struct {
	path string
	info os.FileInfo
}

// collectCandidates walks every root concurrently (one goroutine per root,
// mirroring the teacher's errgroup.WithContext fan-out over independent
// units of work in pkg/enum/filesystem.go) and concatenates the results in
// root order once every walk finishes. The "-" stdin sentinel is read on
// its own before the fan-out since it competes with no other root for
// os.Stdin.
//
// The returned bool reports whether any root-path or mid-walk I/O error
// was encountered (§7): such an error never aborts the walk early (a
// `chmod 000` subdirectory only prunes its own subtree — see
// internal/walk's OnError), it only obligates the caller to exit 1 once
// whatever matches were found have been printed.
func collectCandidates(ctx context.Context, parsed cliargs.Parsed, cfg config.Config) ([]candidate, bool, error) {
	opts := walk.DefaultOptions()
	if parsed.MaxDepth >= 0 {
		opts.MaxDepth = parsed.MaxDepth
	}
	if parsed.MinDepth >= 0 {
		opts.MinDepth = parsed.MinDepth
	}
	opts.RespectGitignore = cfg.RespectGitignore
	opts.IncludeHidden = cfg.IncludeHiddenOrDefault(true)

	perRoot := make([][]candidate, len(parsed.Roots))
	var hadErr atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	for i, root := range parsed.Roots {
		i, root := i, root
		if root == "-" {
			paths, err := readStdinPaths(os.Stdin)
			if err != nil {
				return nil, false, err
			}
			var stdinCands []candidate
			for _, p := range paths {
				info, err := os.Lstat(p)
				if err != nil {
					continue
				}
				stdinCands = append(stdinCands, candidate{path: p, info: info})
			}
			perRoot[i] = stdinCands
			continue
		}
		g.Go(func() error {
			rootOpts := opts
			rootOpts.OnError = func(path string, err error) {
				hadErr.Store(true)
				if path == root {
					// Root-path errors (EACCES/ENOENT on a path the user
					// named directly) are reported as they happen (§7);
					// mid-walk errors on a descendant stay silent, matching
					// GNU find.
					fmt.Fprintln(os.Stderr, "gofind:", err)
				}
			}
			var rootCands []candidate
			err := walk.Walk(gctx, root, rootOpts, func(e walk.Entry) error {
				rootCands = append(rootCands, candidate{path: e.Path, info: e.Info})
				return nil
			})
			if err != nil {
				return err
			}
			perRoot[i] = rootCands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, hadErr.Load(), err
	}

	var out []candidate
	for _, cands := range perRoot {
		out = append(out, cands...)
	}
	return out, hadErr.Load(), nil
}

// maxStdinBytes bounds how much of stdin readStdinPaths will buffer for
// the "-" root sentinel (§6), guarding against an unbounded pipe.
const maxStdinBytes = 1 << 20

func readStdinPaths(r io.Reader) ([]string, error) {
	lr := &io.LimitedReader{R: r, N: maxStdinBytes + 1}
	scanner := bufio.NewScanner(lr)
	var paths []string
	total := 0
	for scanner.Scan() {
		line := scanner.Text()
		total += len(line) + 1
		if total > maxStdinBytes {
			return nil, fmt.Errorf("stdin path list exceeds %d bytes", maxStdinBytes)
		}
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, scanner.Err()
}

// evaluate runs expr against every candidate, dispatching any -name/
// -iname/-path/-ipath/-regex/-iregex test through the orchestrator (so it
// benefits from the selector/GPU path) and every other test (-type,
// -size, -m/a/ctime, -empty) directly in Go, then combines per-test
// boolean results with expr's and/or/not structure.
func evaluate(ctx context.Context, orch *orchestrator.Orchestrator, expr *cliargs.Expr, cands []candidate, available []gpu.Backend, caps map[gpu.Backend]gpu.Capability, forced *gpu.Backend, now time.Time) ([]bool, error) {
	if expr == nil {
		result := make([]bool, len(cands))
		for i := range result {
			result[i] = true
		}
		return result, nil
	}

	testResults, err := evalTests(ctx, orch, expr, cands, available, caps, forced, now)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(cands))
	for i := range cands {
		out[i] = evalExprAt(expr, testResults, i)
	}
	return out, nil
}

// evalTests runs every distinct ExprTest leaf exactly once across all
// candidates and returns its per-candidate boolean results keyed by leaf
// pointer identity.
func evalTests(ctx context.Context, orch *orchestrator.Orchestrator, expr *cliargs.Expr, cands []candidate, available []gpu.Backend, caps map[gpu.Backend]gpu.Capability, forced *gpu.Backend, now time.Time) (map[*cliargs.Expr][]bool, error) {
	results := map[*cliargs.Expr][]bool{}
	var walkExpr func(*cliargs.Expr) error
	walkExpr = func(e *cliargs.Expr) error {
		if e == nil {
			return nil
		}
		switch e.Kind {
		case cliargs.ExprTest:
			r, err := runTest(ctx, orch, e.Test, cands, available, caps, forced, now)
			if err != nil {
				return err
			}
			results[e] = r
			return nil
		case cliargs.ExprNot:
			return walkExpr(e.Left)
		default:
			if err := walkExpr(e.Left); err != nil {
				return err
			}
			return walkExpr(e.Right)
		}
	}
	if err := walkExpr(expr); err != nil {
		return nil, err
	}
	return results, nil
}

func evalExprAt(e *cliargs.Expr, results map[*cliargs.Expr][]bool, i int) bool {
	switch e.Kind {
	case cliargs.ExprTest:
		return results[e][i]
	case cliargs.ExprNot:
		return !evalExprAt(e.Left, results, i)
	case cliargs.ExprAnd:
		return evalExprAt(e.Left, results, i) && evalExprAt(e.Right, results, i)
	case cliargs.ExprOr:
		return evalExprAt(e.Left, results, i) || evalExprAt(e.Right, results, i)
	default:
		return false
	}
}

func runTest(ctx context.Context, orch *orchestrator.Orchestrator, tok cliargs.Token, cands []candidate, available []gpu.Backend, caps map[gpu.Backend]gpu.Capability, forced *gpu.Backend, now time.Time) ([]bool, error) {
	paths := make([][]byte, len(cands))
	for i, c := range cands {
		paths[i] = []byte(c.path)
	}

	switch tok.Name {
	case "name", "iname", "path", "ipath":
		opts := fsmatch.Options(0)
		if tok.Name == "iname" || tok.Name == "ipath" {
			opts |= fsmatch.CaseInsensitive
		}
		if tok.Name == "path" || tok.Name == "ipath" {
			opts |= fsmatch.MatchPath
		}
		if len(tok.Arg) > glob.MaxPatternLen {
			return nil, fmt.Errorf("-%s pattern exceeds %d bytes", tok.Name, glob.MaxPatternLen)
		}
		complexity := selector.Complexity{}
		for _, c := range tok.Arg {
			if c == '*' {
				complexity.StarCount++
			}
			if c == '[' {
				complexity.ClassCount++
			}
		}
		backend := selector.Choose(len(cands), complexity, available, caps, forced)
		matched, err := orch.MatchNames(ctx, backend, []byte(tok.Arg), opts, paths)
		if err != nil {
			return nil, err
		}
		return toBoolSet(matched, len(cands)), nil

	case "regex", "iregex":
		prog, err := regex.Compile(tok.Arg, tok.Name == "iregex")
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", tok.Name, err)
		}
		backend := selector.Choose(len(cands), selector.Complexity{IsRegex: true}, available, caps, forced)
		matched, err := orch.MatchRegex(ctx, backend, prog, paths)
		if err != nil {
			return nil, err
		}
		return toBoolSet(matched, len(cands)), nil

	default:
		return runNonMatchTest(tok, cands, now)
	}
}

func toBoolSet(matched []int, n int) []bool {
	out := make([]bool, n)
	for _, i := range matched {
		out[i] = true
	}
	return out
}
