// builtin.go — the prelude loaded into a fresh session.
//
// Everything here is definable in the calculus itself: Church-style
// booleans (a pair of quotations selects one of itself), n-ary quote and
// compose helpers, stack rotation, and the quotation numerals n0..n4 with
// their successor.
package ucc

var preludeSrcs = []string{
	"{fn true = drop}",
	"{fn false = swap drop}",
	"{fn and = clone apply}",
	"{fn quote2 = quote swap quote swap compose}",
	"{fn quote3 = quote2 swap quote swap compose}",
	"{fn rotate3 = quote2 swap quote compose apply}",
	"{fn rotate4 = quote3 swap quote compose apply}",
	"{fn compose2 = compose}",
	"{fn compose3 = compose2 compose}",
	"{fn compose4 = compose3 compose}",
	"{fn compose5 = compose4 compose}",
	"{fn n0 = drop}",
	"{fn n1 = apply}",
	"{fn n2 = clone compose apply}",
	"{fn n3 = [clone] n2 [compose] n2 apply}",
	"{fn n4 = [clone] n3 [compose] n3 apply}",
	"{fn succ = [[clone]] swap clone [[compose]] swap [apply] compose5}",
}

// LoadPrelude parses and defines the built-in functions. Prelude sources
// are fixed strings, so a failure here is a programming error and panics.
func (c *Context) LoadPrelude() {
	for _, src := range preludeSrcs {
		d, err := ParseFnDef(c.Interner, src)
		if err != nil {
			panic("ucc: bad prelude definition " + src + ": " + err.Error())
		}
		c.Define(d)
	}
}

// NewSession returns a context with the prelude loaded.
func NewSession() *Context {
	c := NewContext()
	c.LoadPrelude()
	return c
}
