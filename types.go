// types.go — the expression and value model.
//
// Programs are Exprs: a closed tagged union of calls, quotations,
// compositions and the six intrinsics. Runtime stack elements are Values,
// a strictly smaller union (calls and quotations only): compositions and
// bare intrinsics exist only as program text and are consumed by execution.
//
// Everything here is immutable once constructed. Reduction builds new trees
// and new stacks; quoted sub-expressions are shared freely because nothing
// ever mutates them and the grammar cannot construct cycles.
//
// Normalization invariant: ComposeExpr never yields a degenerate
// composition — zero sub-expressions collapse to the canonical empty
// expression (the terminal marker) and a single sub-expression collapses to
// itself. The zero Expr value is the empty expression.
package ucc

// Intrinsic identifies one of the six primitive combinators.
type Intrinsic uint8

const (
	Swap Intrinsic = iota
	Clone
	Drop
	Quote
	Compose
	Apply
)

var intrinsicNames = [...]string{"swap", "clone", "drop", "quote", "compose", "apply"}

func (i Intrinsic) String() string {
	if int(i) < len(intrinsicNames) {
		return intrinsicNames[i]
	}
	return "<bad-intrinsic>"
}

// IntrinsicByName maps source text to an intrinsic, if it names one.
func IntrinsicByName(name string) (Intrinsic, bool) {
	for i, n := range intrinsicNames {
		if n == name {
			return Intrinsic(i), true
		}
	}
	return 0, false
}

// ExprTag discriminates the Expr union.
type ExprTag uint8

const (
	XCompose ExprTag = iota // zero value, so Expr{} is the empty expression
	XCall
	XQuote
	XIntrinsic
)

// Expr is one node of an immutable program tree. Exactly one of the payload
// fields is meaningful, selected by Tag.
type Expr struct {
	Tag   ExprTag
	Sym   Symbol    // XCall
	Intr  Intrinsic // XIntrinsic
	Inner *Expr     // XQuote
	Items []Expr    // XCompose
}

func CallExpr(s Symbol) Expr { return Expr{Tag: XCall, Sym: s} }

func IntrinsicExpr(k Intrinsic) Expr { return Expr{Tag: XIntrinsic, Intr: k} }

func QuoteExpr(e Expr) Expr {
	inner := e
	return Expr{Tag: XQuote, Inner: &inner}
}

// ComposeExpr sequences items, applying the normalization invariant.
func ComposeExpr(items ...Expr) Expr {
	switch len(items) {
	case 0:
		return Expr{}
	case 1:
		return items[0]
	}
	return Expr{Tag: XCompose, Items: items}
}

// IsEmpty reports whether e is the empty expression, i.e. the terminal
// marker: nothing left to execute.
func (e Expr) IsEmpty() bool { return e.Tag == XCompose && len(e.Items) == 0 }

// Equal is deep, order-sensitive structural equality. Symbols compare by
// identity, never by name.
func (e Expr) Equal(o Expr) bool {
	if e.Tag != o.Tag {
		return false
	}
	switch e.Tag {
	case XCall:
		return e.Sym == o.Sym
	case XIntrinsic:
		return e.Intr == o.Intr
	case XQuote:
		return e.Inner.Equal(*o.Inner)
	case XCompose:
		if len(e.Items) != len(o.Items) {
			return false
		}
		for i := range e.Items {
			if !e.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// ValueTag discriminates the Value union.
type ValueTag uint8

const (
	VCall ValueTag = iota
	VQuote
)

// Value is a runtime stack element: a named call or a quotation.
type Value struct {
	Tag  ValueTag
	Sym  Symbol // VCall
	Body Expr   // VQuote
}

func CallValue(s Symbol) Value { return Value{Tag: VCall, Sym: s} }

func QuoteValue(e Expr) Value { return Value{Tag: VQuote, Body: e} }

func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	if v.Tag == VCall {
		return v.Sym == o.Sym
	}
	return v.Body.Equal(o.Body)
}

// expr returns the program-text form of v, used when a value flows back
// into execution (quote wrapping, apply splicing).
func (v Value) expr() Expr {
	if v.Tag == VCall {
		return CallExpr(v.Sym)
	}
	return QuoteExpr(v.Body)
}

// ValueStack is an ordered sequence of values, top of stack at the end.
// Stacks follow the same immutable discipline as expressions: push copies,
// pop re-slices with a capped capacity so a later push cannot clobber a
// snapshot held by a trace.
type ValueStack []Value

func (vs ValueStack) Len() int { return len(vs) }

func (vs ValueStack) push(v Value) ValueStack {
	out := make(ValueStack, len(vs)+1)
	copy(out, vs)
	out[len(vs)] = v
	return out
}

func (vs ValueStack) pop() (Value, ValueStack) {
	n := len(vs)
	return vs[n-1], vs[: n-1 : n-1]
}

func (vs ValueStack) Equal(o ValueStack) bool {
	if len(vs) != len(o) {
		return false
	}
	for i := range vs {
		if !vs[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
