package ucc

import "testing"

func Test_ComposeExpr_Normalization(t *testing.T) {
	if !ComposeExpr().IsEmpty() {
		t.Fatal("zero items must give the empty expression")
	}
	single := IntrinsicExpr(Swap)
	if got := ComposeExpr(single); !got.Equal(single) {
		t.Fatalf("single item must collapse, got %+v", got)
	}
	two := ComposeExpr(IntrinsicExpr(Swap), IntrinsicExpr(Drop))
	if two.Tag != XCompose || len(two.Items) != 2 {
		t.Fatalf("want a two-item composition, got %+v", two)
	}
}

func Test_Expr_Equal(t *testing.T) {
	in := NewInterner()
	a := in.Intern("a")
	b := in.Intern("b")

	cases := []struct {
		x, y Expr
		want bool
	}{
		{CallExpr(a), CallExpr(a), true},
		{CallExpr(a), CallExpr(b), false},
		{IntrinsicExpr(Swap), IntrinsicExpr(Swap), true},
		{IntrinsicExpr(Swap), IntrinsicExpr(Drop), false},
		{CallExpr(a), IntrinsicExpr(Swap), false},
		{QuoteExpr(CallExpr(a)), QuoteExpr(CallExpr(a)), true},
		{QuoteExpr(CallExpr(a)), QuoteExpr(CallExpr(b)), false},
		{QuoteExpr(CallExpr(a)), CallExpr(a), false},
		{ComposeExpr(CallExpr(a), CallExpr(b)), ComposeExpr(CallExpr(a), CallExpr(b)), true},
		{ComposeExpr(CallExpr(a), CallExpr(b)), ComposeExpr(CallExpr(b), CallExpr(a)), false},
		{Expr{}, Expr{}, true},
		{Expr{}, CallExpr(a), false},
	}
	for i, tc := range cases {
		if got := tc.x.Equal(tc.y); got != tc.want {
			t.Errorf("case %d: want %v, got %v", i, tc.want, got)
		}
	}
}

func Test_Value_Equal(t *testing.T) {
	in := NewInterner()
	a := in.Intern("a")
	b := in.Intern("b")

	if !CallValue(a).Equal(CallValue(a)) {
		t.Fatal("equal call values differ")
	}
	if CallValue(a).Equal(CallValue(b)) {
		t.Fatal("distinct call values equal")
	}
	if CallValue(a).Equal(QuoteValue(CallExpr(a))) {
		t.Fatal("call equals quote")
	}
	if !QuoteValue(CallExpr(a)).Equal(QuoteValue(CallExpr(a))) {
		t.Fatal("equal quotes differ")
	}
}

func Test_IntrinsicByName(t *testing.T) {
	for i, name := range []string{"swap", "clone", "drop", "quote", "compose", "apply"} {
		k, ok := IntrinsicByName(name)
		if !ok || k != Intrinsic(i) {
			t.Fatalf("%s: got %v ok=%v", name, k, ok)
		}
		if k.String() != name {
			t.Fatalf("String: want %s, got %s", name, k.String())
		}
	}
	if _, ok := IntrinsicByName("swapp"); ok {
		t.Fatal("swapp recognized")
	}
}
