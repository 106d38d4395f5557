// Package densedfa is the regex facade over this module's dense DFA engine.
//
// Compile (or MustCompile) turns a pattern into a Regex backed by an eagerly
// determinized, byte-class-compressed, premultiplied dense.DFA: the
// producer pipeline is regexp/syntax.Parse -> nfa.Compiler -> determinize.
// Determinize -> dense.DFA, exactly the construction flow spec.md §2
// describes for this engine ("determinizer -> add_empty_state +
// set_transition + set_start_state -> shuffle_match_states -> optional
// minimize() -> optional premultiply() -> frozen DFA").
//
// Use Builder when you need anything other than the default configuration
// (byte classes on, premultiplied, not minimized, machine-word state ids):
//
//	re, err := densedfa.NewBuilder().
//		CaseInsensitive(true).
//		Minimize(true).
//		StateIDWidth(densedfa.Width16).
//		Build(`foo[0-9]+bar`)
package densedfa
