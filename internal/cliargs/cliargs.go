// Package cliargs pre-scans os.Args before cobra sees them. GNU find's
// grammar uses single-dash long options (-name, -maxdepth, -iregex) and a
// flat expression list rather than POSIX --flag syntax, which cobra (and
// the pflag library underneath it, per the teacher's cmd wiring) does not
// parse natively. Translate reports the roots, global flags and a flat
// token stream, and ParseExpr builds the boolean expression tree from
// those tokens; the CLI layer (cmd/gofind) turns that tree into
// matcher/filter predicates instead of handing the raw tokens to cobra's
// flag parser at all.
package cliargs

import "fmt"

// TokenKind classifies one parsed expression token.
type TokenKind int

const (
	TokTest   TokenKind = iota // -name, -iname, -path, -ipath, -regex, -iregex, -type, -size, -mtime, -atime, -ctime, -empty
	TokNot                     // -not or !
	TokOr                      // -o / -or
	TokAnd                     // -a / -and (also implicit between adjacent tests)
	TokLParen
	TokRParen
	TokPositional // a path operand or global flag (-maxdepth N, -mindepth N, etc.) handled separately
)

// Token is one unit of the parsed expression.
type Token struct {
	Kind TokenKind
	Name string // flag name without leading '-', e.g. "name", "iregex"
	Arg  string // the flag's argument, if TokTest and the flag takes one
}

// testFlags enumerates which -flag names are TokTest flags and whether
// they consume the following argument.
var testFlags = map[string]bool{
	"name": true, "iname": true, "path": true, "ipath": true,
	"regex": true, "iregex": true, "type": true, "size": true,
	"mtime": true, "atime": true, "ctime": true,
	"empty": false, "prune": false,
}

// globalFlags take an argument but configure the walk rather than test a
// candidate (-maxdepth N, -mindepth N); they are pulled out of the
// expression token stream entirely.
var globalFlags = map[string]bool{
	"maxdepth": true, "mindepth": true,
}

// Parsed is the result of scanning argv: the walk roots, global options,
// and the flat expression token stream (still containing parens/-o/-not,
// left for a higher-level expression parser to build a predicate tree
// from).
type Parsed struct {
	Roots     []string
	MaxDepth  int // -1 if not set
	MinDepth  int
	Print0    bool
	CountOnly bool
	Verbose   bool
	Tokens    []Token
}

// Translate pre-scans argv (os.Args[1:]) and separates it into walk
// roots, global flags, and the expression token stream. It does not
// build the final boolean predicate tree — that is ParseExpr's job
// (expr.go), which composes the tokens Translate recognizes.
func Translate(argv []string) (Parsed, error) {
	p := Parsed{MaxDepth: -1, MinDepth: -1}

	i := 0
	// Leading positional paths: GNU find allows zero or more paths before
	// the first '-' flag; an invocation with no leading path defaults to
	// "." (set below, once the whole argv has been scanned).
	for i < len(argv) && !isFlagLike(argv[i]) {
		p.Roots = append(p.Roots, argv[i])
		i++
	}

	for i < len(argv) {
		a := argv[i]
		switch {
		case a == "-print0":
			p.Print0 = true
			i++
		case a == "-count":
			p.CountOnly = true
			i++
		case a == "-v" || a == "--verbose":
			p.Verbose = true
			i++
		case a == "!" || a == "-not":
			p.Tokens = append(p.Tokens, Token{Kind: TokNot})
			i++
		case a == "-o" || a == "-or":
			p.Tokens = append(p.Tokens, Token{Kind: TokOr})
			i++
		case a == "-a" || a == "-and":
			p.Tokens = append(p.Tokens, Token{Kind: TokAnd})
			i++
		case a == "(":
			p.Tokens = append(p.Tokens, Token{Kind: TokLParen})
			i++
		case a == ")":
			p.Tokens = append(p.Tokens, Token{Kind: TokRParen})
			i++
		case len(a) > 1 && a[0] == '-':
			name := a[1:]
			if globalFlags[name] {
				if i+1 >= len(argv) {
					return p, fmt.Errorf("cliargs: -%s requires an argument", name)
				}
				val := argv[i+1]
				if err := applyGlobal(&p, name, val); err != nil {
					return p, err
				}
				i += 2
				continue
			}
			takesArg, known := testFlags[name]
			if !known {
				return p, fmt.Errorf("cliargs: unknown flag %q", a)
			}
			tok := Token{Kind: TokTest, Name: name}
			if takesArg {
				if i+1 >= len(argv) {
					return p, fmt.Errorf("cliargs: -%s requires an argument", name)
				}
				tok.Arg = argv[i+1]
				i += 2
			} else {
				i++
			}
			p.Tokens = append(p.Tokens, tok)
		default:
			// A stdin sentinel "-" or a positional path appearing after
			// flags (GNU find permits paths interspersed in rare cases);
			// treated as an additional root.
			p.Roots = append(p.Roots, a)
			i++
		}
	}

	if len(p.Roots) == 0 {
		p.Roots = []string{"."}
	}
	return p, nil
}

func isFlagLike(a string) bool {
	return a == "(" || a == ")" || a == "!" || (len(a) > 0 && a[0] == '-')
}

func applyGlobal(p *Parsed, name, val string) error {
	n, err := parseNonNegativeInt(val)
	if err != nil {
		return fmt.Errorf("cliargs: -%s: %w", name, err)
	}
	switch name {
	case "maxdepth":
		p.MaxDepth = n
	case "mindepth":
		p.MinDepth = n
	}
	return nil
}

func parseNonNegativeInt(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, fmt.Errorf("empty integer")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not an integer: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
