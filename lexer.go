// lexer.go — hand-written scanner for the concatenative surface syntax.
//
// The grammar is tiny: identifiers, quotation brackets, fn-definition
// braces, stack delimiters, the two reduction arrows, and colon commands.
// The Unicode forms ⟨ ⟩ ⟶ ⇓ are the canonical spelling; ASCII aliases
// (-> for ⟶, => for ⇓) are accepted so assertions can be typed on any
// keyboard. '#' starts a comment running to end of line.
package ucc

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LSQUARE // "["
	RSQUARE // "]"
	LCURLY  // "{"
	RCURLY  // "}"
	ASSIGN  // "="
	LSTACK  // "⟨"
	RSTACK  // "⟩"

	// Reduction arrows
	SMALLSTEP // "⟶" or "->"
	BIGSTEP   // "⇓" or "=>"

	// Identifiers & keywords
	ID
	FN // "fn"

	// Colon commands, e.g. ":trace"
	COMMAND
)

// Token is a lexical token. Line is 1-based, Col is 0-based.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// LexError is a scan failure with a source position.
type LexError struct {
	Line, Col int
	Msg       string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.cur:])
	return r, true
}

func (l *Lexer) advance() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(l.src[l.cur:])
	l.cur += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r, true
}

func (l *Lexer) match(r rune) bool {
	if p, ok := l.peek(); ok && p == r {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) addToken(tt TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	})
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: fmt.Sprintf(format, args...)}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

// Scan tokenizes the whole source. The token stream always ends with EOF.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		l.skipBlanks()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col

		r, _ := l.advance()
		switch r {
		case '[':
			l.addToken(LSQUARE)
		case ']':
			l.addToken(RSQUARE)
		case '{':
			l.addToken(LCURLY)
		case '}':
			l.addToken(RCURLY)
		case '⟨':
			l.addToken(LSTACK)
		case '⟩':
			l.addToken(RSTACK)
		case '⟶':
			l.addToken(SMALLSTEP)
		case '⇓':
			l.addToken(BIGSTEP)
		case '=':
			if l.match('>') {
				l.addToken(BIGSTEP)
			} else {
				l.addToken(ASSIGN)
			}
		case '-':
			if l.match('>') {
				l.addToken(SMALLSTEP)
			} else {
				return nil, l.errorf("unexpected character '-'")
			}
		case ':':
			if p, ok := l.peek(); !ok || !isIdentStart(p) {
				return nil, l.errorf("expected a command name after ':'")
			}
			l.scanIdentTail()
			l.addToken(COMMAND)
		default:
			if !isIdentStart(r) {
				return nil, l.errorf("unexpected character %q", r)
			}
			l.scanIdentTail()
			if l.src[l.start:l.cur] == "fn" {
				l.addToken(FN)
			} else {
				l.addToken(ID)
			}
		}
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line, Col: l.col})
	return l.tokens, nil
}

func (l *Lexer) scanIdentTail() {
	for {
		p, ok := l.peek()
		if !ok || !isIdentPart(p) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) skipBlanks() {
	for {
		p, ok := l.peek()
		if !ok {
			return
		}
		switch {
		case p == ' ' || p == '\t' || p == '\r' || p == '\n':
			l.advance()
		case p == '#':
			for {
				q, ok := l.peek()
				if !ok || q == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}
