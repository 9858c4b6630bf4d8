// assert.go — checking operational-semantics claims against the evaluator.
//
// An assertion claims that one configuration reduces to another, either in
// exactly one step (⟶) or all the way to a terminal configuration (⇓).
// The checker never trusts the claim: it drives the evaluator and compares
// structurally. On failure the actual configuration is reported so the
// caller can show claimed-vs-actual.
package ucc

// Assertion is a parsed reduction claim.
type Assertion struct {
	Before Config
	After  Config
	Big    bool // ⇓ when true, ⟶ when false
}

// CheckResult reports the verdict plus diagnostics. Actual is the
// configuration the evaluator really produced (or where it got stuck);
// Err is non-nil whenever Pass is false.
type CheckResult struct {
	Pass   bool
	Actual Config
	Err    error
}

// Check verifies a against the evaluator. limit bounds big-step reduction
// (limit <= 0 means unbounded); small-step checks never need it.
func (c *Context) Check(a Assertion, limit int) CheckResult {
	if a.Big {
		return c.checkBig(a, limit)
	}
	return c.checkSmall(a)
}

func (c *Context) checkSmall(a Assertion) CheckResult {
	if a.Before.Terminal() {
		return CheckResult{
			Actual: a.Before,
			Err:    &MalformedAssertionError{Reason: "no step applies: the left-hand side is already terminal"},
		}
	}
	actual, err := c.SmallStep(a.Before)
	if err != nil {
		return CheckResult{Actual: actual, Err: err}
	}
	if !actual.Equal(a.After) {
		return CheckResult{
			Actual: actual,
			Err:    &MalformedAssertionError{Reason: "claimed output does not match the evaluator"},
		}
	}
	return CheckResult{Pass: true, Actual: actual}
}

func (c *Context) checkBig(a Assertion, limit int) CheckResult {
	// A big-step claim whose right-hand side still has unreduced program
	// text is malformed outright, even if the evaluator would pass through
	// that configuration on the way down.
	if !a.After.Terminal() {
		return CheckResult{
			Actual: a.Before,
			Err:    &MalformedAssertionError{Reason: "big-step right-hand side is not terminal"},
		}
	}
	actual, err := c.Eval(a.Before, limit)
	if err != nil {
		return CheckResult{Actual: actual, Err: err}
	}
	if !actual.Equal(a.After) {
		return CheckResult{
			Actual: actual,
			Err:    &MalformedAssertionError{Reason: "claimed output does not match the evaluator"},
		}
	}
	return CheckResult{Pass: true, Actual: actual}
}

// MalformedAssertionError: the claim itself is unusable or simply wrong.
type MalformedAssertionError struct {
	Reason string
}

func (e *MalformedAssertionError) Error() string {
	return "malformed assertion: " + e.Reason
}
