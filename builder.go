package densedfa

// Builder configures and compiles a pattern into a Regex, mirroring
// dfa/lazy.Builder and meta.Config's fluent-setter style: each method
// mutates and returns the receiver so calls chain, and Build is the single
// terminal method.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Anchored sets Config.Anchored.
func (b *Builder) Anchored(v bool) *Builder { b.cfg.Anchored = v; return b }

// CaseInsensitive sets Config.CaseInsensitive.
func (b *Builder) CaseInsensitive(v bool) *Builder { b.cfg.CaseInsensitive = v; return b }

// MultiLine sets Config.MultiLine.
func (b *Builder) MultiLine(v bool) *Builder { b.cfg.MultiLine = v; return b }

// DotAll sets Config.DotAll.
func (b *Builder) DotAll(v bool) *Builder { b.cfg.DotAll = v; return b }

// SwapGreed sets Config.SwapGreed.
func (b *Builder) SwapGreed(v bool) *Builder { b.cfg.SwapGreed = v; return b }

// Unicode sets Config.Unicode.
func (b *Builder) Unicode(v bool) *Builder { b.cfg.Unicode = v; return b }

// AllowInvalidUTF8 sets Config.AllowInvalidUTF8.
func (b *Builder) AllowInvalidUTF8(v bool) *Builder { b.cfg.AllowInvalidUTF8 = v; return b }

// Reverse sets Config.Reverse.
func (b *Builder) Reverse(v bool) *Builder { b.cfg.Reverse = v; return b }

// ByteClasses sets Config.ByteClasses.
func (b *Builder) ByteClasses(v bool) *Builder { b.cfg.ByteClasses = v; return b }

// Premultiply sets Config.Premultiply.
func (b *Builder) Premultiply(v bool) *Builder { b.cfg.Premultiply = v; return b }

// Minimize sets Config.Minimize.
func (b *Builder) Minimize(v bool) *Builder { b.cfg.Minimize = v; return b }

// StateIDWidth sets Config.StateIDWidth.
func (b *Builder) StateIDWidth(w StateIDWidth) *Builder { b.cfg.StateIDWidth = w; return b }

// Build compiles pattern into a Regex using the accumulated configuration.
func (b *Builder) Build(pattern string) (*Regex, error) {
	return compile(pattern, b.cfg)
}
