// errors.go — caret-snippet rendering for lex and parse errors.
//
// WrapErrorWithSource recognizes *LexError and *ParseError and returns an
// error whose message is a numbered snippet with a caret under the
// offending column, one line of context either side:
//
//	PARSE ERROR at 1:9: expected ']', got end of input
//
//	   1 | [clone [apply
//	     |         ^
//
// Any other error is returned unchanged. Output is plain text; the REPL
// applies color on top when the terminal supports it.
package ucc

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments lex/parse errors with a caret-annotated
// snippet of src. Other errors pass through untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Token Col is 0-based; render 1-based.
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// snippet builds the numbered, caret-annotated context block. Coordinates
// are 1-based and clamped to the source bounds so rendering never panics.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
