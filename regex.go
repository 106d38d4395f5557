package densedfa

import (
	"fmt"
	"regexp/syntax"

	"github.com/densemat/densedfa/dense"
	"github.com/densemat/densedfa/determinize"
	"github.com/densemat/densedfa/nfa"
)

// dfaFace is the subset of dense.DFA[S]'s method set Regex needs, erasing
// the state-id width S chosen at compile time behind an interface so Regex
// itself does not need to be generic.
type dfaFace interface {
	IsMatch(bytes []byte) bool
	ShortestMatch(bytes []byte) (int, bool)
	Find(bytes []byte) (int, bool)
	RFind(bytes []byte) (int, bool)
	MemoryUsage() int
	String() string
	ToBytesLittleEndian() ([]byte, error)
	ToBytesBigEndian() ([]byte, error)
	ToBytesNativeEndian() ([]byte, error)
}

// Regex is a compiled regular expression backed by a dense DFA.
//
// A Regex is immutable after Compile/Build returns and safe to use
// concurrently from any number of goroutines, because every query method
// only reads the underlying frozen dense.DFA.
type Regex struct {
	dfa     dfaFace
	pattern string
	reverse bool
}

// Compile compiles pattern with DefaultConfig: byte classes on,
// premultiplied, not minimized, machine-word state ids, forward search.
func Compile(pattern string) (*Regex, error) {
	return compile(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error, for patterns known to be
// valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("densedfa: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the pattern this Regex was compiled from.
func (re *Regex) String() string { return re.pattern }

// IsMatch reports whether bytes contains a match anywhere.
func (re *Regex) IsMatch(bytes []byte) bool {
	return re.dfa.IsMatch(bytes)
}

// ShortestMatch returns the offset just past the first byte at which any
// match state is reached, or ok=false if none is.
func (re *Regex) ShortestMatch(bytes []byte) (offset int, ok bool) {
	return re.dfa.ShortestMatch(bytes)
}

// Find returns the end offset of the leftmost-first match in bytes, or
// ok=false if there is none.
//
// With Builder.Anchored(false) (the default) the match may begin anywhere
// in bytes; with Anchored(true) it must begin at offset 0. ShortestMatch
// and IsMatch follow the same rule. Only the end offset is reported; RFind
// on a Regex built with Builder.Reverse(true) reports start offsets.
func (re *Regex) Find(bytes []byte) (end int, ok bool) {
	return re.dfa.Find(bytes)
}

// RFind runs the same leftmost-first algorithm as Find but requires a
// Regex built with Builder.Reverse(true); it returns the start offset of
// the leftmost-first match, scanning bytes from end to start. Calling
// RFind on a forward-compiled Regex (or Find on a reverse-compiled one)
// produces meaningless results: neither checks the other's precondition,
// matching dense.DFA.RFind's own documented contract.
func (re *Regex) RFind(bytes []byte) (start int, ok bool) {
	return re.dfa.RFind(bytes)
}

// MemoryUsage returns the heap memory, in bytes, used by the compiled
// DFA's transition table and byte-class map.
func (re *Regex) MemoryUsage() int {
	return re.dfa.MemoryUsage()
}

// Debug renders the compiled DFA's states, one per line, for inspection.
func (re *Regex) Debug() string {
	return re.dfa.String()
}

// ToBytesLittleEndian serializes the compiled DFA to a little-endian,
// endian-tagged, 8-byte-aligned byte slice (spec.md §6).
func (re *Regex) ToBytesLittleEndian() ([]byte, error) { return re.dfa.ToBytesLittleEndian() }

// ToBytesBigEndian serializes the compiled DFA to a big-endian byte slice.
func (re *Regex) ToBytesBigEndian() ([]byte, error) { return re.dfa.ToBytesBigEndian() }

// ToBytesNativeEndian serializes the compiled DFA using the host's native
// byte order.
func (re *Regex) ToBytesNativeEndian() ([]byte, error) { return re.dfa.ToBytesNativeEndian() }

// syntaxFlags translates the boolean toggles in cfg into the
// regexp/syntax.Flags syntax.Parse expects. Perl already sets OneLine (^/$
// anchor only to text boundaries), so MultiLine clears it rather than
// setting a bit.
func syntaxFlags(cfg Config) syntax.Flags {
	flags := syntax.Perl
	if cfg.CaseInsensitive {
		flags |= syntax.FoldCase
	}
	if cfg.MultiLine {
		flags &^= syntax.OneLine
	}
	if cfg.DotAll {
		flags |= syntax.DotNL
	}
	if cfg.SwapGreed {
		flags |= syntax.NonGreedy
	}
	if !cfg.Unicode {
		flags &^= syntax.UnicodeGroups
	}
	return flags
}

// compile runs the full producer pipeline: parse -> NFA -> (optionally
// reverse) -> determinize -> minimize? -> premultiply? -> pick a state-id
// width -> Regex. It is the single place that wires nfa.Compiler,
// determinize.Determinize and dense.DFA together, matching spec.md §2's
// construction data flow.
func compile(pattern string, cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	re, err := syntax.Parse(pattern, syntaxFlags(cfg))
	if err != nil {
		return nil, &dense.Error{Kind: dense.InvalidConfig, Message: "invalid pattern", Cause: err}
	}

	ccfg := nfa.DefaultCompilerConfig()
	ccfg.Anchored = cfg.Anchored
	ccfg.DotNewline = cfg.DotAll
	ccfg.UTF8 = !cfg.AllowInvalidUTF8
	ccfg.ASCIIOnly = !cfg.Unicode

	compiler := nfa.NewCompiler(ccfg)
	built, err := compiler.CompileRegexp(re)
	if err != nil {
		return nil, &dense.Error{Kind: dense.InvalidConfig, Message: "NFA compilation failed", Cause: err}
	}

	if cfg.Reverse {
		if cfg.Anchored {
			built = nfa.ReverseAnchored(built)
		} else {
			built = nfa.Reverse(built)
		}
	}
	if !cfg.ByteClasses {
		built.SetByteClasses(nfa.SingletonByteClasses())
	}

	dopts := determinize.Options{Anchored: cfg.Anchored, ByteClasses: cfg.ByteClasses}

	dfa, err := buildDFA(built, dopts, cfg)
	if err != nil {
		return nil, err
	}

	return &Regex{dfa: dfa, pattern: pattern, reverse: cfg.Reverse}, nil
}

// buildDFA runs Determinize at the requested (or auto-selected) state-id
// width, applying Minimize/Premultiply per cfg. Go generics need the width
// fixed at compile time, so this is a type switch over the handful of
// representations ID permits rather than one generic call parameterized by
// a runtime value.
func buildDFA(n *nfa.NFA, dopts determinize.Options, cfg Config) (dfaFace, error) {
	if cfg.StateIDWidth != WidthAuto {
		return buildDFAWidth(n, dopts, cfg, cfg.StateIDWidth)
	}

	for _, w := range []StateIDWidth{Width8, Width16, Width32} {
		dfa, err := buildDFAWidth(n, dopts, cfg, w)
		if err == nil {
			return dfa, nil
		}
		var derr *dense.Error
		if e, ok := err.(*dense.Error); ok {
			derr = e
		}
		if derr == nil || (derr.Kind != dense.StateIDOverflow && derr.Kind != dense.PremultiplyOverflow) {
			return nil, err
		}
	}
	return buildDFAWidth(n, dopts, cfg, Width64)
}

func buildDFAWidth(n *nfa.NFA, dopts determinize.Options, cfg Config, w StateIDWidth) (dfaFace, error) {
	switch w {
	case Width8:
		d, err := determinize.Determinize[uint8](n, dopts)
		return finishDFA(d, err, cfg)
	case Width16:
		d, err := determinize.Determinize[uint16](n, dopts)
		return finishDFA(d, err, cfg)
	case Width32:
		d, err := determinize.Determinize[uint32](n, dopts)
		return finishDFA(d, err, cfg)
	case Width64:
		d, err := determinize.Determinize[uint64](n, dopts)
		return finishDFA(d, err, cfg)
	default:
		return nil, fmt.Errorf("densedfa: unreachable state-id width %d", w)
	}
}

// finishDFA applies Minimize and Premultiply to an already-determinized
// DFA of a concrete width S, per cfg.
func finishDFA[S dense.ID](d *dense.DFA[S], err error, cfg Config) (*dense.DFA[S], error) {
	if err != nil {
		return nil, err
	}
	if cfg.Minimize {
		if err := d.Minimize(); err != nil {
			return nil, err
		}
	}
	if cfg.Premultiply {
		if err := d.Premultiply(); err != nil {
			return nil, err
		}
	}
	return d, nil
}
