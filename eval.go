// eval.go — the term-rewriting evaluator.
//
// A configuration is a (value stack, remaining expression) pair. SmallStep
// performs exactly one transition of the step relation; Eval iterates to the
// terminal configuration (empty remaining expression), an error, or an
// optional caller-supplied step bound. The relation is a partial function:
// at most one transition applies to any configuration, so reduction is
// deterministic. Non-termination is possible and is not the evaluator's
// problem — a runaway program is cut off only by the caller's limit.
//
// Composition is pure sequencing: stepping a composition steps its head
// within the same transition, so flattening is never an observable step.
package ucc

import "fmt"

// Config is the evaluator's entire state at one point in a reduction.
type Config struct {
	Stack ValueStack
	Expr  Expr
}

// Terminal reports whether there is nothing left to execute.
func (c Config) Terminal() bool { return c.Expr.IsEmpty() }

func (c Config) Equal(o Config) bool {
	return c.Stack.Equal(o.Stack) && c.Expr.Equal(o.Expr)
}

// StackUnderflowError: an intrinsic needed more values than the stack holds.
type StackUnderflowError struct {
	Available, Expected int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: %d value(s) available, %d expected", e.Available, e.Expected)
}

// UnboundCallError: a call names neither an intrinsic nor a definition.
type UnboundCallError struct {
	Sym  Symbol
	Name string
}

func (e *UnboundCallError) Error() string {
	return fmt.Sprintf("undefined function `%s`", e.Name)
}

// TypeMismatchError: an intrinsic got a value of the wrong runtime shape.
// Only compose is shape-sensitive: quote wraps anything and apply resolves
// a bare call like ordinary execution would.
type TypeMismatchError struct {
	Intr Intrinsic
	Got  Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s expects a quotation on the stack", e.Intr)
}

// StepLimitError: the caller's small-step bound was reached before the
// reduction terminated. Distinct from a semantic error — the program may
// well be fine, just slow or divergent.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}

// splitHead peels the first executable unit off e, flattening through
// nested compositions. ok is false when e is terminal.
func splitHead(e Expr) (head Expr, rest []Expr, ok bool) {
	for {
		if e.Tag != XCompose {
			return e, rest, true
		}
		if len(e.Items) == 0 {
			// Degenerate empty composition in head position; the grammar
			// never builds one, but skipping it is harmless.
			if len(rest) == 0 {
				return Expr{}, nil, false
			}
			e, rest = rest[0], rest[1:]
			continue
		}
		merged := make([]Expr, 0, len(e.Items)-1+len(rest))
		merged = append(merged, e.Items[1:]...)
		merged = append(merged, rest...)
		e, rest = e.Items[0], merged
	}
}

// spliceExpr prepends body to the remaining items, flattening a composed
// body so the result respects the normalization invariant.
func spliceExpr(body Expr, rest []Expr) Expr {
	if body.Tag == XCompose {
		merged := make([]Expr, 0, len(body.Items)+len(rest))
		merged = append(merged, body.Items...)
		merged = append(merged, rest...)
		return ComposeExpr(merged...)
	}
	return ComposeExpr(append([]Expr{body}, rest...)...)
}

// composeBodies concatenates two quotation bodies in stack order, merging
// through compositions on either side.
func composeBodies(a, b Expr) Expr {
	var items []Expr
	if a.Tag == XCompose {
		items = append(items, a.Items...)
	} else {
		items = append(items, a)
	}
	if b.Tag == XCompose {
		items = append(items, b.Items...)
	} else {
		items = append(items, b)
	}
	return ComposeExpr(items...)
}

// SmallStep performs one transition from cfg. On error the original
// configuration is returned untouched so the caller can display where the
// reduction was stuck. A terminal configuration steps to itself.
func (c *Context) SmallStep(cfg Config) (Config, error) {
	head, rest, ok := splitHead(cfg.Expr)
	if !ok {
		return cfg, nil
	}
	switch head.Tag {
	case XIntrinsic:
		return c.stepIntrinsic(head.Intr, cfg, rest)
	case XCall:
		if k, ok := c.IntrinsicFor(head.Sym); ok {
			return c.stepIntrinsic(k, cfg, rest)
		}
		if body, ok := c.Lookup(head.Sym); ok {
			return Config{Stack: cfg.Stack, Expr: spliceExpr(body, rest)}, nil
		}
		return cfg, &UnboundCallError{Sym: head.Sym, Name: c.Interner.Resolve(head.Sym)}
	case XQuote:
		return Config{Stack: cfg.Stack.push(QuoteValue(*head.Inner)), Expr: ComposeExpr(rest...)}, nil
	}
	// splitHead never returns a composition head
	return cfg, nil
}

var intrinsicArity = [...]int{
	Swap:    2,
	Clone:   1,
	Drop:    1,
	Quote:   1,
	Compose: 2,
	Apply:   1,
}

func (c *Context) stepIntrinsic(k Intrinsic, cfg Config, rest []Expr) (Config, error) {
	vs := cfg.Stack
	if need := intrinsicArity[k]; len(vs) < need {
		return cfg, &StackUnderflowError{Available: len(vs), Expected: need}
	}
	switch k {
	case Swap:
		out := make(ValueStack, len(vs))
		copy(out, vs)
		n := len(out)
		out[n-2], out[n-1] = out[n-1], out[n-2]
		return Config{Stack: out, Expr: ComposeExpr(rest...)}, nil

	case Clone:
		return Config{Stack: vs.push(vs[len(vs)-1]), Expr: ComposeExpr(rest...)}, nil

	case Drop:
		_, out := vs.pop()
		return Config{Stack: out, Expr: ComposeExpr(rest...)}, nil

	case Quote:
		// Shape-agnostic: wrap whatever is on top in one more level of
		// quotation.
		v, out := vs.pop()
		return Config{Stack: out.push(QuoteValue(v.expr())), Expr: ComposeExpr(rest...)}, nil

	case Compose:
		b, out := vs.pop()
		a, out := out.pop()
		if a.Tag != VQuote {
			return cfg, &TypeMismatchError{Intr: Compose, Got: a}
		}
		if b.Tag != VQuote {
			return cfg, &TypeMismatchError{Intr: Compose, Got: b}
		}
		// Concatenation follows stack order: the deeper body runs first.
		return Config{Stack: out.push(QuoteValue(composeBodies(a.Body, b.Body))), Expr: ComposeExpr(rest...)}, nil

	case Apply:
		v, out := vs.pop()
		if v.Tag == VCall {
			// A bare call resolves like any other call on the next step.
			return Config{Stack: out, Expr: spliceExpr(CallExpr(v.Sym), rest)}, nil
		}
		return Config{Stack: out, Expr: spliceExpr(v.Body, rest)}, nil
	}
	return cfg, nil
}

// Eval iterates SmallStep until the configuration is terminal. limit bounds
// the number of steps when positive; limit <= 0 means unbounded, in which
// case a divergent program never returns.
func (c *Context) Eval(cfg Config, limit int) (Config, error) {
	steps := 0
	for !cfg.Terminal() {
		if limit > 0 && steps >= limit {
			return cfg, &StepLimitError{Limit: limit}
		}
		next, err := c.SmallStep(cfg)
		if err != nil {
			return cfg, err
		}
		cfg = next
		steps++
	}
	return cfg, nil
}
