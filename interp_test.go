package ucc

import (
	"bytes"
	"strings"
	"testing"
)

// feed runs one line of input to completion and returns everything printed.
func feed(t *testing.T, ip *Interp, input string) string {
	t.Helper()
	var buf bytes.Buffer
	quit, err := ip.Start(input, &buf)
	if err != nil {
		t.Fatalf("Start(%q): %v", input, err)
	}
	if quit {
		t.Fatalf("Start(%q): unexpected quit", input)
	}
	for !ip.Done() {
		if err := ip.Step(&buf); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	return buf.String()
}

func wantLines(t *testing.T, got string, want ...string) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("want %d lines, got %d:\n%s", len(want), len(lines), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: want %q, got %q", i, want[i], lines[i])
		}
	}
}

func Test_Interp_EvalExpression(t *testing.T) {
	ip := NewInterp(Options{})
	out := feed(t, ip, "[a] [b] swap")
	wantLines(t, out,
		"⟨⟩ [a] [b] swap",
		"⇓ ⟨[b] [a]⟩",
	)
	// The stack persists across inputs.
	out = feed(t, ip, "drop")
	wantLines(t, out,
		"⟨[b] [a]⟩ drop",
		"⇓ ⟨[b]⟩",
	)
}

func Test_Interp_DefineAndEval(t *testing.T) {
	ip := NewInterp(Options{})
	out := feed(t, ip, "{fn double = clone} [a] double")
	wantLines(t, out,
		"Defined `double`.",
		"⟨⟩ [a] double",
		"⇓ ⟨[a] [a]⟩",
	)
	out = feed(t, ip, "{fn double = clone clone}")
	wantLines(t, out, "Redefined `double`.")
}

func Test_Interp_EvalError(t *testing.T) {
	ip := NewInterp(Options{})
	out := feed(t, ip, "[a] missing [b]")
	wantLines(t, out,
		"⟨⟩ [a] missing [b]",
		"⇓ ⟨[a]⟩ missing [b]",
		"undefined function `missing`",
	)
	// The partially-reduced stack stays for inspection.
	if len(ip.Stack()) != 1 {
		t.Fatalf("want 1 value on the stack, got %d", len(ip.Stack()))
	}
}

func Test_Interp_Trace(t *testing.T) {
	ip := NewInterp(Options{})
	out := feed(t, ip, ":trace [a] [b] swap")
	wantLines(t, out,
		"⟨⟩ [a] [b] swap",
		"⟶ ⟨[a]⟩ [b] swap",
		"⟶ ⟨[a] [b]⟩ swap",
		"⟶ ⟨[b] [a]⟩",
	)
}

func Test_Interp_TraceCompression(t *testing.T) {
	ip := NewInterp(Options{Prelude: true, Compress: true})
	out := feed(t, ip, ":trace [drop]")
	wantLines(t, out,
		"⟨⟩ [drop]",
		"⟶ ⟨[drop]⟩",
		"= ⟨[true]⟩",
	)
}

func Test_Interp_StepLimit(t *testing.T) {
	ip := NewInterp(Options{MaxSteps: 10})
	out := feed(t, ip, "{fn loop = loop} loop")
	if !strings.Contains(out, "step limit of 10 exceeded") {
		t.Fatalf("want step-limit report, got:\n%s", out)
	}
	if !ip.Done() {
		t.Fatal("session still busy after abort")
	}
}

func Test_Interp_SessionCommands(t *testing.T) {
	ip := NewInterp(Options{})

	feed(t, ip, "{fn b = clone} {fn a = drop}")
	wantLines(t, feed(t, ip, ":list"), "a b")
	wantLines(t, feed(t, ip, ":show b"), "{fn b = clone}")
	wantLines(t, feed(t, ip, ":show nope"), "Not defined.")

	wantLines(t, feed(t, ip, ":forget"), "Forgot `a`.")
	wantLines(t, feed(t, ip, ":forget b"), "Forgot `b`.")
	wantLines(t, feed(t, ip, ":forget"), "No definitions.")

	feed(t, ip, "[x]")
	wantLines(t, feed(t, ip, ":drop"), "Values dropped.")
	if len(ip.Stack()) != 0 {
		t.Fatal(":drop left values behind")
	}

	feed(t, ip, "{fn c = clone}")
	wantLines(t, feed(t, ip, ":clear"), "Definitions cleared.")
	wantLines(t, feed(t, ip, ":list"), "")

	out := feed(t, ip, ":help")
	if !strings.Contains(out, ":trace") || !strings.Contains(out, ":forget") {
		t.Fatalf("help text incomplete:\n%s", out)
	}
}

func Test_Interp_DropDefsMode(t *testing.T) {
	ip := NewInterp(Options{DropDefs: true})
	feed(t, ip, "{fn a = drop} [x]")
	wantLines(t, feed(t, ip, ":drop"), "Forgot `a`.")
	if len(ip.Stack()) != 1 {
		t.Fatal("drop-defs mode must leave the stack alone")
	}
}

func Test_Interp_Reset(t *testing.T) {
	ip := NewInterp(Options{Prelude: true})
	feed(t, ip, "{fn z = clone} [x]")
	wantLines(t, feed(t, ip, ":reset"), "Reset.")
	if len(ip.Stack()) != 0 {
		t.Fatal("stack survived reset")
	}
	if _, ok := ip.Context().Interner.Interned("z"); ok {
		t.Fatal("interner survived reset")
	}
	// Prelude is reloaded per the session options.
	if sym, ok := ip.Context().Interner.Interned("true"); !ok {
		t.Fatal("prelude missing after reset")
	} else if _, ok := ip.Context().Lookup(sym); !ok {
		t.Fatal("prelude missing after reset")
	}
}

func Test_Interp_Quit(t *testing.T) {
	ip := NewInterp(Options{})
	var buf bytes.Buffer
	quit, err := ip.Start(":quit", &buf)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !quit {
		t.Fatal(":quit must request exit")
	}
}

func Test_Interp_ParseErrorKeepsSessionAlive(t *testing.T) {
	ip := NewInterp(Options{})
	var buf bytes.Buffer
	quit, err := ip.Start("[a", &buf)
	if err != nil || quit {
		t.Fatalf("Start: quit=%v err=%v", quit, err)
	}
	if !strings.Contains(buf.String(), "PARSE ERROR") {
		t.Fatalf("want caret snippet, got:\n%s", buf.String())
	}
	if !ip.Done() {
		t.Fatal("bad input left pending work")
	}
	// And the session still works.
	wantLines(t, feed(t, ip, "[a]"), "⟨⟩ [a]", "⇓ ⟨[a]⟩")
}
