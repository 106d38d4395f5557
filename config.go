package densedfa

import "github.com/densemat/densedfa/dense"

// StateIDWidth selects the integer representation used for a compiled
// DFA's state identifiers, per spec.md §6's "state-id size" builder knob.
type StateIDWidth uint8

const (
	// WidthAuto picks the narrowest width (Width8, Width16, Width32, in
	// that order) that fits the determinized DFA's state count, falling
	// back to Width64 as a last resort.
	WidthAuto StateIDWidth = iota
	// Width8 uses uint8 state identifiers (at most 256 states).
	Width8
	// Width16 uses uint16 state identifiers (at most 65,536 states).
	Width16
	// Width32 uses uint32 state identifiers.
	Width32
	// Width64 uses uint64 state identifiers; always sufficient.
	Width64
)

// Config holds every knob exposed by Builder, gathered into a plain
// validatable struct in the style of dfa/lazy.Config and meta.Config.
//
// Most callers should use Builder's fluent setters rather than constructing
// a Config directly; Builder.Build validates before compiling.
type Config struct {
	// Anchored forces the pattern to match only at the start of the
	// haystack, equivalent to prefixing the pattern with \A.
	Anchored bool

	// CaseInsensitive folds ASCII and Unicode case during matching,
	// equivalent to wrapping the pattern in (?i:...).
	CaseInsensitive bool

	// MultiLine makes ^ and $ match at line boundaries (after/before '\n')
	// in addition to the start/end of the haystack, equivalent to (?m:...).
	MultiLine bool

	// DotAll makes '.' match '\n' as well as every other byte/codepoint,
	// equivalent to (?s:...).
	DotAll bool

	// SwapGreed inverts the default greediness of repetition operators:
	// `a*` becomes non-greedy and `a*?` becomes greedy.
	SwapGreed bool

	// Unicode enables Unicode-aware character classes (\w, \d, \s and
	// \p{...} expand to their full Unicode meaning). When false, these
	// classes are restricted to their ASCII meaning, which also shrinks
	// the resulting NFA and DFA considerably.
	Unicode bool

	// AllowInvalidUTF8 clears the compiled NFA's UTF8 flag. Neither the NFA
	// compiler nor the determinizer reads that flag, so the compiled
	// automaton is the same with or without it.
	AllowInvalidUTF8 bool

	// Reverse compiles the pattern's reverse NFA (nfa.Reverse) instead of
	// its forward NFA, producing a DFA suitable only for RFind.
	Reverse bool

	// ByteClasses compresses the transition table's alphabet into
	// equivalence classes. Defaults to true; disable only to inspect an
	// uncompressed 256-column table (e.g. for debugging or serialization
	// size experiments).
	ByteClasses bool

	// Premultiply stores state identifiers already multiplied by the
	// alphabet length, trading a one-time transform for a cheaper search
	// hot path. Defaults to true.
	Premultiply bool

	// Minimize runs Hopcroft's partition refinement after determinization
	// to collapse Nerode-equivalent states. Defaults to false: it costs
	// construction time to save states that an already byte-class-
	// compressed table has usually already shrunk enough.
	Minimize bool

	// StateIDWidth selects the integer width used for state identifiers.
	// Defaults to the machine word: Width64 on 64-bit platforms, Width32 on
	// 32-bit ones.
	StateIDWidth StateIDWidth
}

// DefaultConfig returns the configuration Compile and MustCompile use: byte
// classes on, premultiplied, not minimized, Unicode on, machine-word state
// ids (Width64 on 64-bit platforms, Width32 on 32-bit ones), and every other
// toggle off.
func DefaultConfig() Config {
	width := Width64
	if ^uint(0)>>32 == 0 {
		width = Width32
	}
	return Config{
		ByteClasses:  true,
		Premultiply:  true,
		Unicode:      true,
		StateIDWidth: width,
	}
}

// Validate reports whether c is self-consistent. Reverse+AllowInvalidUTF8
// has no interaction that would make it invalid, so the only thing to
// check today is StateIDWidth; Validate exists as a seam so future builder
// knobs have somewhere to add checks without changing Build's signature.
func (c *Config) Validate() error {
	switch c.StateIDWidth {
	case WidthAuto, Width8, Width16, Width32, Width64:
	default:
		return &dense.Error{Kind: dense.InvalidConfig, Message: "unrecognized StateIDWidth"}
	}
	return nil
}
