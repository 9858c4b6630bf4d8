// symbols.go — session-scoped identifier interning.
//
// Symbols are compact handles into an Interner owned by the session Context.
// All structural comparison in the evaluator is by Symbol, never by name, so
// interning must guarantee: equal text yields the same Symbol and distinct
// text never collides. The table only grows; a session reset swaps in a
// fresh Interner rather than clearing this one.
package ucc

// Symbol identifies an interned identifier. The zero value is only valid
// once at least one name has been interned.
type Symbol uint32

// Interner maps identifier text to Symbols and back.
type Interner struct {
	lookup map[string]Symbol
	names  []string
}

func NewInterner() *Interner {
	return &Interner{lookup: map[string]Symbol{}}
}

// Intern returns the Symbol for name, allocating one on first sight.
func (in *Interner) Intern(name string) Symbol {
	if s, ok := in.lookup[name]; ok {
		return s
	}
	s := Symbol(len(in.names))
	in.lookup[name] = s
	in.names = append(in.names, name)
	return s
}

// Interned reports the Symbol for name without allocating one.
func (in *Interner) Interned(name string) (Symbol, bool) {
	s, ok := in.lookup[name]
	return s, ok
}

// Resolve returns the text of s. Symbols from a different session are not
// meaningful here; an out-of-range handle resolves to a placeholder rather
// than panicking, since it can only reach us through a caller bug.
func (in *Interner) Resolve(s Symbol) string {
	if int(s) >= len(in.names) {
		return "<unknown-symbol>"
	}
	return in.names[s]
}

func (in *Interner) Len() int { return len(in.names) }
