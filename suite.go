// suite.go — fixture-driven assertion suites.
//
// A suite is a YAML document of named reduction claims, checked against the
// evaluator by the assertion checker. Suites are the conformance format for
// `ucc test` and for the package's own testdata:
//
//	name: booleans
//	prelude: true
//	maxSteps: 10000
//	cases:
//	  - name: and-true-true
//	    defs:
//	      - "{fn id = }"
//	    assert: "⟨[true] [true]⟩ and ⇓ ⟨[true]⟩"
//
// Each case runs in a fresh context so definitions cannot leak between
// cases.
package ucc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SuiteCase is one named claim, with optional extra definitions.
type SuiteCase struct {
	Name   string   `yaml:"name"`
	Defs   []string `yaml:"defs"`
	Assert string   `yaml:"assert"`
}

// Suite is a parsed suite file.
type Suite struct {
	Name     string      `yaml:"name"`
	Prelude  bool        `yaml:"prelude"`
	MaxSteps int         `yaml:"maxSteps"`
	Cases    []SuiteCase `yaml:"cases"`
}

// ParseSuite decodes a suite from YAML.
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("bad suite: %w", err)
	}
	for i, c := range s.Cases {
		if c.Assert == "" {
			return nil, fmt.Errorf("bad suite: case %d (%s) has no assertion", i, c.Name)
		}
	}
	return &s, nil
}

// LoadSuite reads and decodes a suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SuiteResult is the verdict for one case. Detail is empty on a pass and
// holds a claimed-vs-actual explanation on a failure.
type SuiteResult struct {
	Name   string
	Pass   bool
	Detail string
}

// RunSuite checks every case and reports per-case results plus the number
// of failures.
func RunSuite(s *Suite) ([]SuiteResult, int) {
	results := make([]SuiteResult, 0, len(s.Cases))
	failed := 0
	for _, tc := range s.Cases {
		r := runSuiteCase(s, tc)
		if !r.Pass {
			failed++
		}
		results = append(results, r)
	}
	return results, failed
}

func runSuiteCase(s *Suite, tc SuiteCase) SuiteResult {
	ctx := NewContext()
	if s.Prelude {
		ctx.LoadPrelude()
	}
	for _, src := range tc.Defs {
		d, err := ParseFnDef(ctx.Interner, src)
		if err != nil {
			return SuiteResult{Name: tc.Name, Detail: WrapErrorWithSource(err, src).Error()}
		}
		ctx.Define(d)
	}
	a, err := ParseAssertion(ctx.Interner, tc.Assert)
	if err != nil {
		return SuiteResult{Name: tc.Name, Detail: WrapErrorWithSource(err, tc.Assert).Error()}
	}
	res := ctx.Check(a, s.MaxSteps)
	if res.Pass {
		return SuiteResult{Name: tc.Name, Pass: true}
	}
	p := NewPrinter(ctx)
	detail := fmt.Sprintf("claimed %s\n  actual %s", p.Config(a.After), p.Config(res.Actual))
	if res.Err != nil {
		detail += "\n  " + res.Err.Error()
	}
	return SuiteResult{Name: tc.Name, Detail: detail}
}
