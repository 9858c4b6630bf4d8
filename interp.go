// interp.go — the interactive session driver.
//
// Interp owns a Context and a persistent value stack and executes parsed
// input one small step per Step call, so a front end can interleave its own
// output (or poll for cancellation) between steps. Start parses a line and
// either handles it immediately (:show, :list, …) or leaves an evaluation
// or trace pending; the caller pumps Step until Done reports true.
//
// Evaluation mutates the persistent stack as it goes, so an error leaves
// the partially-reduced stack in place for inspection — the session itself
// never dies on a semantic error.
package ucc

import (
	"fmt"
	"io"
	"sort"
)

// ItemKind discriminates InterpItem.
type ItemKind uint8

const (
	ItemDef ItemKind = iota
	ItemExpr
)

// InterpItem is one unit of an evaluation request: a definition to store or
// an expression to reduce.
type InterpItem struct {
	Kind ItemKind
	Def  FnDef
	Expr Expr
}

// CommandKind discriminates InterpCommand.
type CommandKind uint8

const (
	CmdEval CommandKind = iota
	CmdTrace
	CmdShow
	CmdList
	CmdDrop
	CmdForget
	CmdClear
	CmdReset
	CmdHelp
	CmdQuit
)

// InterpCommand is one parsed unit of interactive input.
type InterpCommand struct {
	Kind   CommandKind
	Items  []InterpItem // CmdEval
	Expr   Expr         // CmdTrace
	Sym    Symbol       // CmdShow, CmdForget (named form)
	HasSym bool
}

// Help lists the interactive commands.
const Help = `Commands available:

   <expr>                   evaluate <expr>
   {fn <sym> = <expr>}      define <sym> as <expr>
   :trace <expr>            trace the evaluation of <expr>
   :show <sym>              show the definition of <sym>
   :list                    list the defined symbols
   :drop                    drop the current value stack
   :forget [<sym>]          forget the last (or the named) definition
   :clear                   clear all definitions
   :reset                   reset the interpreter
   :help                    display this list of commands
   :quit                    exit the REPL
`

// Options configure a session.
type Options struct {
	MaxSteps int  // small-step bound per input; 0 means unbounded
	Prelude  bool // load the built-in definitions
	DropDefs bool // :drop forgets the last definition instead of clearing the stack
	Compress bool // display quoted values by their defined names
}

// Interp is an interactive session.
type Interp struct {
	ctx  *Context
	vs   ValueStack
	opts Options

	// pending work, nil when idle
	items []InterpItem // queued by CmdEval
	cur   *Expr        // expression currently reducing (eval or trace)
	trace bool
	first bool
	steps int
}

// NewInterp creates a session.
func NewInterp(opts Options) *Interp {
	ctx := NewContext()
	if opts.Prelude {
		ctx.LoadPrelude()
	}
	return &Interp{ctx: ctx, opts: opts}
}

// Context exposes the session context (definitions, interner).
func (ip *Interp) Context() *Context { return ip.ctx }

// Stack returns the current persistent value stack.
func (ip *Interp) Stack() ValueStack { return ip.vs }

// Done reports whether all pending work has been stepped to completion.
func (ip *Interp) Done() bool { return ip.items == nil && ip.cur == nil }

func (ip *Interp) printer() *Printer {
	return &Printer{In: ip.ctx.Interner, Ctx: ip.ctx, Compress: ip.opts.Compress}
}

// Start parses one unit of input and dispatches it. Session commands are
// handled in full; evaluation and tracing are left pending for Step. The
// returned quit flag asks the front end to exit; err is an I/O failure
// only — bad input is reported on w and the session carries on.
func (ip *Interp) Start(input string, w io.Writer) (quit bool, err error) {
	cmd, perr := ParseInput(ip.ctx.Interner, input)
	if perr != nil {
		_, err = fmt.Fprintln(w, WrapErrorWithSource(perr, input).Error())
		return false, err
	}
	p := ip.printer()
	ip.steps = 0

	switch cmd.Kind {
	case CmdEval:
		ip.items = cmd.Items
		ip.first = true
		ip.trace = false

	case CmdTrace:
		if _, err = fmt.Fprintf(w, "%s\n", p.Config(Config{Stack: ip.vs, Expr: cmd.Expr})); err != nil {
			return false, err
		}
		e := cmd.Expr
		ip.cur = &e
		ip.trace = true

	case CmdShow:
		if body, ok := ip.ctx.Lookup(cmd.Sym); ok {
			_, err = fmt.Fprintf(w, "%s\n", p.FnDef(FnDef{Name: cmd.Sym, Body: body}))
		} else {
			_, err = fmt.Fprintln(w, "Not defined.")
		}

	case CmdList:
		defs := ip.ctx.All()
		names := make([]string, 0, len(defs))
		for _, d := range defs {
			names = append(names, ip.ctx.Interner.Resolve(d.Name))
		}
		sort.Strings(names)
		for i, name := range names {
			sep := " "
			if i == 0 {
				sep = ""
			}
			if _, err = fmt.Fprintf(w, "%s%s", sep, name); err != nil {
				return false, err
			}
		}
		_, err = fmt.Fprintln(w)

	case CmdDrop:
		if ip.opts.DropDefs {
			return false, ip.forgetLast(w)
		}
		ip.vs = nil
		_, err = fmt.Fprintln(w, "Values dropped.")

	case CmdForget:
		if cmd.HasSym {
			name := ip.ctx.Interner.Resolve(cmd.Sym)
			if ip.ctx.Remove(cmd.Sym) {
				_, err = fmt.Fprintf(w, "Forgot `%s`.\n", name)
			} else {
				_, err = fmt.Fprintln(w, "Not defined.")
			}
			return false, err
		}
		return false, ip.forgetLast(w)

	case CmdClear:
		ip.ctx.Clear()
		_, err = fmt.Fprintln(w, "Definitions cleared.")

	case CmdReset:
		*ip = *NewInterp(ip.opts)
		_, err = fmt.Fprintln(w, "Reset.")

	case CmdHelp:
		_, err = io.WriteString(w, Help)

	case CmdQuit:
		return true, nil
	}
	return false, err
}

func (ip *Interp) forgetLast(w io.Writer) error {
	d, ok := ip.ctx.RemoveLast()
	if !ok {
		_, err := fmt.Fprintln(w, "No definitions.")
		return err
	}
	_, err := fmt.Fprintf(w, "Forgot `%s`.\n", ip.ctx.Interner.Resolve(d.Name))
	return err
}

// Step advances pending work by one unit: storing one definition, or
// performing one small step of the expression under reduction. Semantic
// errors are reported on w and abandon the rest of the input; the returned
// error is an I/O failure only.
func (ip *Interp) Step(w io.Writer) error {
	switch {
	case ip.cur != nil:
		if ip.trace {
			return ip.stepTrace(w)
		}
		return ip.stepEval(w)
	case ip.items != nil:
		return ip.stepItem(w)
	}
	return nil
}

func (ip *Interp) stepItem(w io.Writer) error {
	if len(ip.items) == 0 {
		ip.items = nil
		return nil
	}
	item := ip.items[0]
	ip.items = ip.items[1:]
	if len(ip.items) == 0 {
		ip.items = nil
	}

	switch item.Kind {
	case ItemDef:
		name := ip.ctx.Interner.Resolve(item.Def.Name)
		if prev := ip.ctx.Define(item.Def); prev != nil {
			_, err := fmt.Fprintf(w, "Redefined `%s`.\n", name)
			return err
		}
		_, err := fmt.Fprintf(w, "Defined `%s`.\n", name)
		return err
	default:
		e := item.Expr
		ip.cur = &e
		ip.first = true
		return nil
	}
}

func (ip *Interp) stepEval(w io.Writer) error {
	p := ip.printer()
	if ip.first {
		ip.first = false
		if _, err := fmt.Fprintf(w, "%s\n", p.Config(Config{Stack: ip.vs, Expr: *ip.cur})); err != nil {
			return err
		}
	}
	if ip.cur.IsEmpty() {
		if _, err := fmt.Fprintf(w, "⇓ %s\n", p.Stack(ip.vs)); err != nil {
			return err
		}
		ip.cur = nil
		return nil
	}
	cfg, serr := ip.advance(Config{Stack: ip.vs, Expr: *ip.cur})
	ip.vs = cfg.Stack
	*ip.cur = cfg.Expr
	if serr != nil {
		if _, err := fmt.Fprintf(w, "⇓ %s %s\n", p.Stack(ip.vs), p.Expr(*ip.cur)); err != nil {
			return err
		}
		return ip.abort(w, serr)
	}
	return nil
}

func (ip *Interp) stepTrace(w io.Writer) error {
	p := ip.printer()
	if ip.cur.IsEmpty() {
		ip.cur = nil
		return nil
	}
	cfg, serr := ip.advance(Config{Stack: ip.vs, Expr: *ip.cur})
	ip.vs = cfg.Stack
	*ip.cur = cfg.Expr
	if serr != nil {
		return ip.abort(w, serr)
	}
	plain := &Printer{In: ip.ctx.Interner}
	here := Config{Stack: ip.vs, Expr: *ip.cur}
	if _, err := fmt.Fprintf(w, "⟶ %s\n", plain.Config(here)); err != nil {
		return err
	}
	if ip.opts.Compress {
		if line := p.Config(here); line != plain.Config(here) {
			if _, err := fmt.Fprintf(w, "= %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// advance performs one bounded small step of cfg.
func (ip *Interp) advance(cfg Config) (Config, error) {
	if ip.opts.MaxSteps > 0 && ip.steps >= ip.opts.MaxSteps {
		return cfg, &StepLimitError{Limit: ip.opts.MaxSteps}
	}
	next, err := ip.ctx.SmallStep(cfg)
	if err != nil {
		return cfg, err
	}
	ip.steps++
	return next, nil
}

// abort reports serr and drops whatever input is still queued.
func (ip *Interp) abort(w io.Writer, serr error) error {
	ip.cur = nil
	ip.items = nil
	_, err := fmt.Fprintln(w, serr.Error())
	return err
}
