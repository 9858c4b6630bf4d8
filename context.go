// context.go — the session context: interner plus definition store.
//
// A Context is the single-writer session state the evaluator reads. The
// definition map is only ever mutated between reductions (the REPL defines,
// then evaluates); the evaluator never observes an interleaved write, so no
// locking is needed. Definitions keep their insertion order so :list and
// :forget have stable, explainable behavior.
package ucc

// FnDef binds a name to its expansion.
type FnDef struct {
	Name Symbol
	Body Expr
}

// Context owns the interner and the definition store for one session.
type Context struct {
	Interner *Interner

	defs  map[Symbol]Expr
	order []Symbol // insertion order, no duplicates

	intr map[Symbol]Intrinsic
}

// NewContext returns an empty session context. The six intrinsic names are
// interned eagerly so the evaluator can recognize them by symbol identity.
func NewContext() *Context {
	c := &Context{
		Interner: NewInterner(),
		defs:     map[Symbol]Expr{},
		intr:     map[Symbol]Intrinsic{},
	}
	for i, name := range intrinsicNames {
		c.intr[c.Interner.Intern(name)] = Intrinsic(i)
	}
	return c
}

// IntrinsicFor reports whether s names a primitive combinator. Intrinsics
// take precedence over definitions during evaluation, so a definition can
// never shadow one.
func (c *Context) IntrinsicFor(s Symbol) (Intrinsic, bool) {
	k, ok := c.intr[s]
	return k, ok
}

// Define upserts d and returns the previous binding, if any (last write
// wins; whether to warn on redefinition is the REPL's call).
func (c *Context) Define(d FnDef) *FnDef {
	prev, existed := c.defs[d.Name]
	c.defs[d.Name] = d.Body
	if !existed {
		c.order = append(c.order, d.Name)
	}
	if existed {
		return &FnDef{Name: d.Name, Body: prev}
	}
	return nil
}

// Lookup returns the expansion bound to s.
func (c *Context) Lookup(s Symbol) (Expr, bool) {
	e, ok := c.defs[s]
	return e, ok
}

// All returns the definitions in insertion order.
func (c *Context) All() []FnDef {
	out := make([]FnDef, 0, len(c.order))
	for _, s := range c.order {
		out = append(out, FnDef{Name: s, Body: c.defs[s]})
	}
	return out
}

// Remove drops the definition of s, reporting whether one existed.
func (c *Context) Remove(s Symbol) bool {
	if _, ok := c.defs[s]; !ok {
		return false
	}
	delete(c.defs, s)
	for i, o := range c.order {
		if o == s {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveLast drops the most recently added definition and returns it.
func (c *Context) RemoveLast() (FnDef, bool) {
	if len(c.order) == 0 {
		return FnDef{}, false
	}
	s := c.order[len(c.order)-1]
	d := FnDef{Name: s, Body: c.defs[s]}
	delete(c.defs, s)
	c.order = c.order[:len(c.order)-1]
	return d, true
}

// Clear removes every definition. The interner is left alone: symbols live
// for the session.
func (c *Context) Clear() {
	c.defs = map[Symbol]Expr{}
	c.order = nil
}

// NameFor searches for a definition whose body equals e, for compressed
// display of quoted stack values. First match in insertion order wins.
func (c *Context) NameFor(e Expr) (Symbol, bool) {
	for _, s := range c.order {
		if c.defs[s].Equal(e) {
			return s, true
		}
	}
	return 0, false
}
