// trace.go — replaying the configurations a reduction visits.
//
// A Tracer is a pull-based iterator in the bufio.Scanner mold: Next
// advances, Config reads the current snapshot, Err reports how the walk
// ended. It is a pure observer over SmallStep — it cannot change which
// transition fires — and since the evaluator is deterministic and reads an
// immutable view of the definitions, a fresh Tracer over the same input
// replays the identical sequence.
package ucc

// Tracer walks the configurations visited from an initial configuration
// through to termination, an error, or the step limit.
type Tracer struct {
	ctx   *Context
	cfg   Config
	err   error
	limit int
	steps int
	state traceState
}

type traceState uint8

const (
	traceFresh traceState = iota
	traceRunning
	traceDone
)

// NewTracer prepares a trace of cfg. limit bounds the number of small steps
// when positive.
func NewTracer(ctx *Context, cfg Config, limit int) *Tracer {
	return &Tracer{ctx: ctx, cfg: cfg, limit: limit}
}

// Next advances to the next configuration. The first call yields the
// initial configuration itself, so every trace has at least one snapshot.
func (t *Tracer) Next() bool {
	switch t.state {
	case traceDone:
		return false
	case traceFresh:
		t.state = traceRunning
		return true
	}
	if t.cfg.Terminal() {
		t.state = traceDone
		return false
	}
	if t.limit > 0 && t.steps >= t.limit {
		t.err = &StepLimitError{Limit: t.limit}
		t.state = traceDone
		return false
	}
	next, err := t.ctx.SmallStep(t.cfg)
	if err != nil {
		t.err = err
		t.state = traceDone
		return false
	}
	t.cfg = next
	t.steps++
	return true
}

// Config returns the current snapshot.
func (t *Tracer) Config() Config { return t.cfg }

// Err reports why the trace stopped, nil for normal termination.
func (t *Tracer) Err() error { return t.err }

// Steps returns the number of small steps taken so far.
func (t *Tracer) Steps() int { return t.steps }

// TraceAll collects the full visited-configuration sequence. The snapshots
// gathered before an error are returned alongside it.
func TraceAll(ctx *Context, cfg Config, limit int) ([]Config, error) {
	tr := NewTracer(ctx, cfg, limit)
	var out []Config
	for tr.Next() {
		out = append(out, tr.Config())
	}
	return out, tr.Err()
}
