// parser.go — recursive descent parser for expressions, definitions,
// stack literals, reduction assertions, and interactive input.
//
// Grammar sketch (juxtaposition binds the sequence together):
//
//	expr      := term*
//	term      := ID | "[" expr "]"
//	fnDef     := "{" "fn" ID "=" expr "}"
//	stack     := "⟨" value* "⟩"
//	value     := "[" expr "]" | ID
//	assertion := stack expr ("⟶" | "⇓") stack expr
//	input     := command | (fnDef | expr)+
//
// An ID that names one of the six intrinsics parses to an intrinsic node;
// anything else parses to a call. A term sequence of length zero is the
// empty expression and a sequence of length one collapses to its single
// term, so no degenerate composition ever leaves this file.
package ucc

import "fmt"

// ParseError is a syntax failure with a source position.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// ParseExpr parses a complete expression.
func ParseExpr(in *Interner, src string) (Expr, error) {
	p, err := newParser(in, src)
	if err != nil {
		return Expr{}, err
	}
	e := p.expr()
	if p.pendingErr != nil {
		return Expr{}, p.takeErr()
	}
	if err := p.expect(EOF, "end of input"); err != nil {
		return Expr{}, err
	}
	return e, nil
}

// ParseFnDef parses a single {fn name = expr} definition.
func ParseFnDef(in *Interner, src string) (FnDef, error) {
	p, err := newParser(in, src)
	if err != nil {
		return FnDef{}, err
	}
	d, perr := p.fnDef()
	if perr != nil {
		return FnDef{}, perr
	}
	if err := p.expect(EOF, "end of input"); err != nil {
		return FnDef{}, err
	}
	return d, nil
}

// ParseStack parses a ⟨…⟩ value stack literal.
func ParseStack(in *Interner, src string) (ValueStack, error) {
	p, err := newParser(in, src)
	if err != nil {
		return nil, err
	}
	vs, perr := p.stack()
	if perr != nil {
		return nil, perr
	}
	if err := p.expect(EOF, "end of input"); err != nil {
		return nil, err
	}
	return vs, nil
}

// ParseAssertion parses a small-step (⟶) or big-step (⇓) reduction claim,
// selecting the discipline from the arrow.
func ParseAssertion(in *Interner, src string) (Assertion, error) {
	p, err := newParser(in, src)
	if err != nil {
		return Assertion{}, err
	}
	before, perr := p.config(SMALLSTEP, BIGSTEP)
	if perr != nil {
		return Assertion{}, perr
	}
	arrow := p.next()
	if arrow.Type != SMALLSTEP && arrow.Type != BIGSTEP {
		return Assertion{}, p.errAt(arrow, "expected a reduction arrow (⟶ or ⇓)")
	}
	after, perr := p.config(EOF)
	if perr != nil {
		return Assertion{}, perr
	}
	if err := p.expect(EOF, "end of input"); err != nil {
		return Assertion{}, err
	}
	return Assertion{Before: before, After: after, Big: arrow.Type == BIGSTEP}, nil
}

// ParseItems parses a sequence of definitions and expressions, the payload
// of an evaluation request (or a whole source file).
func ParseItems(in *Interner, src string) ([]InterpItem, error) {
	p, err := newParser(in, src)
	if err != nil {
		return nil, err
	}
	items, perr := p.items()
	if perr != nil {
		return nil, perr
	}
	if err := p.expect(EOF, "end of input"); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseInput parses one unit of interactive input: a colon command or a
// sequence of definitions and expressions to evaluate.
func ParseInput(in *Interner, src string) (InterpCommand, error) {
	p, err := newParser(in, src)
	if err != nil {
		return InterpCommand{}, err
	}
	cmd, perr := p.input()
	if perr != nil {
		return InterpCommand{}, perr
	}
	if err := p.expect(EOF, "end of input"); err != nil {
		return InterpCommand{}, err
	}
	return cmd, nil
}

/* ---------- parser internals ---------- */

type parser struct {
	in   *Interner
	toks []Token
	pos  int

	// pendingErr holds a bracket mismatch detected inside an expr run;
	// expr itself cannot fail, so the error is surfaced by its caller.
	pendingErr *ParseError
}

func (p *parser) takeErr() *ParseError {
	err := p.pendingErr
	p.pendingErr = nil
	return err
}

func newParser(in *Interner, src string) (*parser, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return &parser{in: in, toks: toks}, nil
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *parser) errAt(t Token, msg string) *ParseError {
	return &ParseError{Line: t.Line, Col: t.Col, Msg: msg}
}

func (p *parser) expect(tt TokenType, what string) *ParseError {
	t := p.next()
	if t.Type != tt {
		if t.Type == EOF {
			return p.errAt(t, fmt.Sprintf("expected %s, got end of input", what))
		}
		return p.errAt(t, fmt.Sprintf("expected %s, got %q", what, t.Lexeme))
	}
	return nil
}

// expr consumes the maximal run of terms at the current position. It never
// fails on its own: an empty run is the empty expression, and a misplaced
// token is left for the caller to reject with better context.
func (p *parser) expr() Expr {
	var items []Expr
	for {
		switch p.peek().Type {
		case ID:
			t := p.next()
			if k, ok := IntrinsicByName(t.Lexeme); ok {
				items = append(items, IntrinsicExpr(k))
			} else {
				items = append(items, CallExpr(p.in.Intern(t.Lexeme)))
			}
		case LSQUARE:
			p.next()
			body := p.expr()
			if p.pendingErr != nil {
				return ComposeExpr(items...)
			}
			if err := p.expect(RSQUARE, "']'"); err != nil {
				// A bracket mismatch is the one structural error an expr
				// run can detect itself; park it for the caller.
				p.pendingErr = err
				return ComposeExpr(items...)
			}
			items = append(items, QuoteExpr(body))
		default:
			return ComposeExpr(items...)
		}
	}
}

func (p *parser) fnDef() (FnDef, *ParseError) {
	if err := p.expect(LCURLY, "'{'"); err != nil {
		return FnDef{}, err
	}
	if err := p.expect(FN, "'fn'"); err != nil {
		return FnDef{}, err
	}
	name := p.next()
	if name.Type != ID {
		return FnDef{}, p.errAt(name, "expected a function name")
	}
	if _, ok := IntrinsicByName(name.Lexeme); ok {
		return FnDef{}, p.errAt(name, fmt.Sprintf("cannot redefine intrinsic `%s`", name.Lexeme))
	}
	if err := p.expect(ASSIGN, "'='"); err != nil {
		return FnDef{}, err
	}
	body := p.expr()
	if p.pendingErr != nil {
		return FnDef{}, p.takeErr()
	}
	if err := p.expect(RCURLY, "'}'"); err != nil {
		return FnDef{}, err
	}
	return FnDef{Name: p.in.Intern(name.Lexeme), Body: body}, nil
}

func (p *parser) stack() (ValueStack, *ParseError) {
	if err := p.expect(LSTACK, "'⟨'"); err != nil {
		return nil, err
	}
	vs := ValueStack{}
	for {
		switch p.peek().Type {
		case LSQUARE:
			p.next()
			body := p.expr()
			if p.pendingErr != nil {
				return nil, p.takeErr()
			}
			if err := p.expect(RSQUARE, "']'"); err != nil {
				return nil, err
			}
			vs = append(vs, QuoteValue(body))
		case ID:
			t := p.next()
			vs = append(vs, CallValue(p.in.Intern(t.Lexeme)))
		case RSTACK:
			p.next()
			return vs, nil
		default:
			return nil, p.errAt(p.peek(), "expected a stack value or '⟩'")
		}
	}
}

// config parses "stack expr" up to (but not consuming) one of the stop
// token types.
func (p *parser) config(stops ...TokenType) (Config, *ParseError) {
	vs, err := p.stack()
	if err != nil {
		return Config{}, err
	}
	e := p.expr()
	if p.pendingErr != nil {
		return Config{}, p.takeErr()
	}
	t := p.peek()
	for _, s := range stops {
		if t.Type == s {
			return Config{Stack: vs, Expr: e}, nil
		}
	}
	return Config{}, p.errAt(t, fmt.Sprintf("unexpected %q in configuration", t.Lexeme))
}

func (p *parser) items() ([]InterpItem, *ParseError) {
	var items []InterpItem
	for {
		switch p.peek().Type {
		case LCURLY:
			d, err := p.fnDef()
			if err != nil {
				return nil, err
			}
			items = append(items, InterpItem{Kind: ItemDef, Def: d})
		case ID, LSQUARE:
			e := p.expr()
			if p.pendingErr != nil {
				return nil, p.takeErr()
			}
			items = append(items, InterpItem{Kind: ItemExpr, Expr: e})
		default:
			return items, nil
		}
	}
}

func (p *parser) input() (InterpCommand, *ParseError) {
	if p.peek().Type != COMMAND {
		items, err := p.items()
		if err != nil {
			return InterpCommand{}, err
		}
		return InterpCommand{Kind: CmdEval, Items: items}, nil
	}
	t := p.next()
	switch t.Lexeme {
	case ":trace":
		e := p.expr()
		if p.pendingErr != nil {
			return InterpCommand{}, p.takeErr()
		}
		return InterpCommand{Kind: CmdTrace, Expr: e}, nil
	case ":show":
		name := p.next()
		if name.Type != ID {
			return InterpCommand{}, p.errAt(name, "expected a function name after :show")
		}
		return InterpCommand{Kind: CmdShow, Sym: p.in.Intern(name.Lexeme), HasSym: true}, nil
	case ":list":
		return InterpCommand{Kind: CmdList}, nil
	case ":drop":
		return InterpCommand{Kind: CmdDrop}, nil
	case ":forget":
		if p.peek().Type == ID {
			name := p.next()
			return InterpCommand{Kind: CmdForget, Sym: p.in.Intern(name.Lexeme), HasSym: true}, nil
		}
		return InterpCommand{Kind: CmdForget}, nil
	case ":clear":
		return InterpCommand{Kind: CmdClear}, nil
	case ":reset":
		return InterpCommand{Kind: CmdReset}, nil
	case ":help":
		return InterpCommand{Kind: CmdHelp}, nil
	case ":quit":
		return InterpCommand{Kind: CmdQuit}, nil
	default:
		return InterpCommand{}, p.errAt(t, fmt.Sprintf("unknown command %q (:help lists commands)", t.Lexeme))
	}
}
