package ucc

import (
	"errors"
	"testing"
)

func Test_Check_SmallStepPass(t *testing.T) {
	ctx := NewContext()
	a := mustAssertion(t, ctx, "⟨[x] [y]⟩ swap ⟶ ⟨[y] [x]⟩")
	res := ctx.Check(a, 0)
	if !res.Pass {
		t.Fatalf("want pass, got err=%v actual=%s", res.Err, NewPrinter(ctx).Config(res.Actual))
	}
}

func Test_Check_SmallStepMismatch(t *testing.T) {
	ctx := NewContext()
	a := mustAssertion(t, ctx, "⟨[x] [y]⟩ swap ⟶ ⟨[x] [y]⟩")
	res := ctx.Check(a, 0)
	if res.Pass {
		t.Fatal("want fail")
	}
	var ma *MalformedAssertionError
	if !errors.As(res.Err, &ma) {
		t.Fatalf("want MalformedAssertionError, got %v", res.Err)
	}
	// The actual configuration is reported for diagnostics.
	want := mustAssertion(t, ctx, "⟨[x] [y]⟩ swap ⟶ ⟨[y] [x]⟩").After
	wantConfig(t, ctx, res.Actual, want)
}

func Test_Check_SmallStepOnTerminalFails(t *testing.T) {
	ctx := NewContext()
	a := mustAssertion(t, ctx, "⟨[x]⟩ ⟶ ⟨[x]⟩")
	res := ctx.Check(a, 0)
	if res.Pass {
		t.Fatal("want fail: no step applies to a terminal configuration")
	}
	var ma *MalformedAssertionError
	if !errors.As(res.Err, &ma) {
		t.Fatalf("want MalformedAssertionError, got %v", res.Err)
	}
}

func Test_Check_SmallStepErrorFails(t *testing.T) {
	ctx := NewContext()
	a := mustAssertion(t, ctx, "⟨⟩ clone ⟶ ⟨⟩")
	res := ctx.Check(a, 0)
	if res.Pass {
		t.Fatal("want fail")
	}
	var uf *StackUnderflowError
	if !errors.As(res.Err, &uf) {
		t.Fatalf("want StackUnderflowError, got %v", res.Err)
	}
}

func Test_Check_BigStepPass(t *testing.T) {
	ctx := NewContext()
	mustDefine(t, ctx, "{fn double = clone}")
	a := mustAssertion(t, ctx, "⟨⟩ [a] double ⇓ ⟨[a] [a]⟩")
	res := ctx.Check(a, 0)
	if !res.Pass {
		t.Fatalf("want pass, got err=%v actual=%s", res.Err, NewPrinter(ctx).Config(res.Actual))
	}
	if !res.Actual.Terminal() {
		t.Fatal("big-step result must be terminal")
	}
}

// A big-step claim whose right-hand side still contains program text is
// malformed even when the reduction genuinely passes through that state.
func Test_Check_BigStepNonTerminalRHSIsMalformed(t *testing.T) {
	ctx := NewContext()
	mustDefine(t, ctx, "{fn double = clone}")
	a := mustAssertion(t, ctx, "⟨⟩ [a] double ⇓ ⟨[a]⟩ double")
	res := ctx.Check(a, 0)
	if res.Pass {
		t.Fatal("want fail")
	}
	var ma *MalformedAssertionError
	if !errors.As(res.Err, &ma) {
		t.Fatalf("want MalformedAssertionError, got %v", res.Err)
	}
}

func Test_Check_BigStepStepLimit(t *testing.T) {
	ctx := NewContext()
	mustDefine(t, ctx, "{fn loop = loop}")
	a := mustAssertion(t, ctx, "⟨⟩ loop ⇓ ⟨⟩")
	res := ctx.Check(a, 50)
	if res.Pass {
		t.Fatal("want fail")
	}
	var sl *StepLimitError
	if !errors.As(res.Err, &sl) {
		t.Fatalf("want StepLimitError, got %v", res.Err)
	}
}

func Test_Check_BigStepMismatchReportsActual(t *testing.T) {
	ctx := NewContext()
	a := mustAssertion(t, ctx, "⟨⟩ [a] [b] ⇓ ⟨[b] [a]⟩")
	res := ctx.Check(a, 0)
	if res.Pass {
		t.Fatal("want fail")
	}
	want := mustStack(t, ctx, "⟨[a] [b]⟩")
	if !res.Actual.Stack.Equal(want) {
		t.Fatalf("actual stack: got %s", NewPrinter(ctx).Stack(res.Actual.Stack))
	}
}
