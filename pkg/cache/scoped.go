package cache

// ScopedKeyer prefixes every key produced by another Keyer. The CLI and the
// server scope keys by build version so entries written by an older layout
// algorithm are never served by a newer binary sharing the same store.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer returns a Keyer that prepends scope to inner's keys. A nil
// inner means DefaultKeyer; an empty scope returns inner unchanged.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope == "" {
		return inner
	}
	return ScopedKeyer{inner: inner, scope: scope}
}

func (k ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.scope + k.inner.LayoutKey(docHash, opts)
}

func (k ScopedKeyer) ReflowKey(docHash string, opts ReflowKeyOpts) string {
	return k.scope + k.inner.ReflowKey(docHash, opts)
}
