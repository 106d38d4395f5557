package nfa

import (
	"regexp/syntax"
	"testing"
)

func mustCompile(t *testing.T, pattern string, cfg CompilerConfig) *NFA {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	n, err := NewCompiler(cfg).CompileRegexp(re)
	if err != nil {
		t.Fatalf("CompileRegexp(%q): %v", pattern, err)
	}
	return n
}

func TestCompileLiteralHasMatchState(t *testing.T) {
	n := mustCompile(t, "abc", DefaultCompilerConfig())
	if n.States() == 0 {
		t.Fatalf("compiled NFA has no states")
	}
	foundMatch := false
	for it := n.Iter(); it.HasNext(); {
		if it.Next().IsMatch() {
			foundMatch = true
		}
	}
	if !foundMatch {
		t.Fatalf("compiled NFA for literal pattern has no match state")
	}
}

func TestByteClassesCompressAlphabet(t *testing.T) {
	n := mustCompile(t, "[a-z]+", DefaultCompilerConfig())
	bc := n.ByteClasses()
	if bc.AlphabetLen() >= 256 {
		t.Errorf("AlphabetLen() = %d, want a compressed alphabet well under 256 for [a-z]+", bc.AlphabetLen())
	}
	// Every byte in the same input range should map to the same class.
	if bc.Get('a') != bc.Get('m') {
		t.Errorf("byte classes split a contiguous class range unexpectedly")
	}
}

func TestSingletonByteClassesIsIdentity(t *testing.T) {
	bc := SingletonByteClasses()
	if !bc.IsSingleton() {
		t.Fatalf("SingletonByteClasses().IsSingleton() = false, want true")
	}
	if bc.AlphabetLen() != 256 {
		t.Errorf("AlphabetLen() = %d, want 256", bc.AlphabetLen())
	}
	for i := 0; i < 256; i++ {
		if bc.Get(byte(i)) != byte(i) {
			t.Fatalf("singleton class map is not the identity at byte %d", i)
		}
	}
}

func TestSetByteClassesOverridesComputedClasses(t *testing.T) {
	n := mustCompile(t, "[a-z]+", DefaultCompilerConfig())
	if n.ByteClasses().IsSingleton() {
		t.Fatalf("expected compiler to compute a non-trivial alphabet for [a-z]+")
	}
	n.SetByteClasses(SingletonByteClasses())
	if !n.ByteClasses().IsSingleton() {
		t.Fatalf("SetByteClasses did not override the computed alphabet")
	}
}

func TestReverseSwapsStartAndMatch(t *testing.T) {
	n := mustCompile(t, "abc", CompilerConfig{UTF8: true, Anchored: true, MaxRecursionDepth: 100})
	rev := Reverse(n)
	if rev.States() == 0 {
		t.Fatalf("reversed NFA has no states")
	}
	start := rev.StartAnchored()
	st := rev.State(start)
	if st == nil {
		t.Fatalf("reversed NFA start state is nil")
	}
	// The reversed NFA starts where the forward one matched, so its first
	// transition reads the forward pattern's last byte.
	if lo, hi, _ := st.ByteRange(); st.Kind() != StateByteRange || lo != 'c' || hi != 'c' {
		t.Errorf("reversed start state = %v, want a ByteRange on 'c'", st)
	}
}

func TestAnchoredVsUnanchoredStart(t *testing.T) {
	n := mustCompile(t, "abc", DefaultCompilerConfig())
	if n.StartAnchored() == n.StartUnanchored() {
		t.Errorf("unanchored compilation should prefix the pattern with an implicit (?s:.)*? loop, giving distinct starts")
	}
}

func TestAnchoredConfigSingleStart(t *testing.T) {
	n := mustCompile(t, "abc", CompilerConfig{UTF8: true, Anchored: true, MaxRecursionDepth: 100})
	if !n.IsAlwaysAnchored() && n.StartAnchored() != n.StartUnanchored() {
		t.Errorf("Anchored config should not need an unanchored prefix")
	}
}
