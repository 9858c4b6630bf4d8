// printer.go — rendering expressions, values, stacks and configurations
// back to concrete syntax.
//
// Output round-trips through the parser: print(parse(s)) == canonical(s).
// Compression is a display-only nicety: a quoted value whose body equals a
// defined function's body prints as [name] instead of the expanded body.
// It never touches the values themselves, so reduction is unaffected.
package ucc

import "strings"

// Printer renders the model against a session's interner. Ctx is only
// needed for compressed display and may be nil otherwise.
type Printer struct {
	In       *Interner
	Ctx      *Context
	Compress bool
}

// NewPrinter returns a printer for ctx with compression off.
func NewPrinter(ctx *Context) *Printer {
	return &Printer{In: ctx.Interner, Ctx: ctx}
}

// Expr renders e. The empty expression renders as the empty string.
func (p *Printer) Expr(e Expr) string {
	var b strings.Builder
	p.writeExpr(&b, e)
	return b.String()
}

func (p *Printer) writeExpr(b *strings.Builder, e Expr) {
	switch e.Tag {
	case XCall:
		b.WriteString(p.In.Resolve(e.Sym))
	case XIntrinsic:
		b.WriteString(e.Intr.String())
	case XQuote:
		b.WriteByte('[')
		p.writeExpr(b, *e.Inner)
		b.WriteByte(']')
	case XCompose:
		for i, item := range e.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			p.writeExpr(b, item)
		}
	}
}

// Value renders a stack value.
func (p *Printer) Value(v Value) string {
	if v.Tag == VCall {
		return p.In.Resolve(v.Sym)
	}
	if p.Compress && p.Ctx != nil {
		if name, ok := p.Ctx.NameFor(v.Body); ok {
			return "[" + p.In.Resolve(name) + "]"
		}
	}
	return "[" + p.Expr(v.Body) + "]"
}

// Stack renders a value stack, bottom first: ⟨[a] [b]⟩.
func (p *Printer) Stack(vs ValueStack) string {
	var b strings.Builder
	b.WriteString("⟨")
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Value(v))
	}
	b.WriteString("⟩")
	return b.String()
}

// Config renders "stack expr"; a terminal configuration is just the stack.
func (p *Printer) Config(cfg Config) string {
	s := p.Stack(cfg.Stack)
	if cfg.Terminal() {
		return s
	}
	return s + " " + p.Expr(cfg.Expr)
}

// FnDef renders a definition in source form: {fn name = body}.
func (p *Printer) FnDef(d FnDef) string {
	return "{fn " + p.In.Resolve(d.Name) + " = " + p.Expr(d.Body) + "}"
}

// Assertion renders a reduction claim with its arrow.
func (p *Printer) Assertion(a Assertion) string {
	arrow := "⟶"
	if a.Big {
		arrow = "⇓"
	}
	return p.Config(a.Before) + " " + arrow + " " + p.Config(a.After)
}
