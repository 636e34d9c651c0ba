// Package ron implements the minimal subset of the Rusty Object Notation
// that the changelog pipeline needs: structs with named fields, string
// maps, string lists, quoted strings, and Some/None options. It is not a
// general RON implementation; the fragment and aggregate codecs own their
// document shapes and drive the scanner field by field.
package ron

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/ronlog/internal/errors"
)

// Kind classifies a scanned token.
type Kind int

const (
	// Punct is a single punctuation rune: ( ) { } [ ] : ,
	Punct Kind = iota
	// String is a double-quoted string literal; Text holds the unquoted value.
	String
	// Ident is a bare identifier such as a field name, Some, or None.
	Ident
	// EOF marks the end of input.
	EOF
)

// Token is one lexical unit of a RON document.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// Scanner tokenizes a RON document and offers the expectation helpers the
// codecs are written against. All errors are EncodingErrors carrying the
// 1-based input line.
type Scanner struct {
	src    string
	pos    int
	line   int
	peeked *Token
}

// NewScanner returns a scanner over the given document.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

func (s *Scanner) errorf(format string, args ...any) error {
	return &errors.EncodingError{Line: s.line, Reason: fmt.Sprintf(format, args...)}
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\n':
			s.line++
			s.pos++
		case ' ', '\t', '\r':
			s.pos++
		case '/':
			// Line comments only; block comments are never emitted.
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
				for s.pos < len(s.src) && s.src[s.pos] != '\n' {
					s.pos++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// Next consumes and returns the next token.
func (s *Scanner) Next() (Token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.scan()
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (Token, error) {
	if s.peeked == nil {
		tok, err := s.scan()
		if err != nil {
			return Token{}, err
		}
		s.peeked = &tok
	}
	return *s.peeked, nil
}

func (s *Scanner) scan() (Token, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return Token{Kind: EOF, Line: s.line}, nil
	}

	c := s.src[s.pos]
	switch {
	case strings.IndexByte("(){}[]:,", c) >= 0:
		s.pos++
		return Token{Kind: Punct, Text: string(c), Line: s.line}, nil
	case c == '"':
		return s.scanString()
	case isIdentStart(c):
		start := s.pos
		for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
			s.pos++
		}
		return Token{Kind: Ident, Text: s.src[start:s.pos], Line: s.line}, nil
	default:
		return Token{}, s.errorf("unexpected character %q", c)
	}
}

func (s *Scanner) scanString() (Token, error) {
	line := s.line
	s.pos++ // opening quote

	var sb strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			return Token{Kind: String, Text: sb.String(), Line: line}, nil
		case '\\':
			s.pos++
			if s.pos >= len(s.src) {
				return Token{}, s.errorf("unterminated escape sequence")
			}
			esc := s.src[s.pos]
			s.pos++
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				return Token{}, s.errorf("unsupported escape sequence \\%c", esc)
			}
		case '\n':
			return Token{}, s.errorf("unterminated string literal")
		default:
			s.pos++
			sb.WriteByte(c)
		}
	}
	return Token{}, s.errorf("unterminated string literal")
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// ExpectPunct consumes the next token and fails unless it is the given
// punctuation rune.
func (s *Scanner) ExpectPunct(p byte) error {
	tok, err := s.Next()
	if err != nil {
		return err
	}
	if tok.Kind != Punct || tok.Text != string(p) {
		return s.errorf("expected %q, found %q", string(p), tok.Text)
	}
	return nil
}

// ExpectField consumes `name :` and fails on any other input.
func (s *Scanner) ExpectField(name string) error {
	tok, err := s.Next()
	if err != nil {
		return err
	}
	if tok.Kind != Ident || tok.Text != name {
		return s.errorf("expected field %q, found %q", name, tok.Text)
	}
	return s.ExpectPunct(':')
}

// ExpectString consumes the next token and returns its value, failing
// unless it is a string literal.
func (s *Scanner) ExpectString() (string, error) {
	tok, err := s.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != String {
		return "", s.errorf("expected string literal, found %q", tok.Text)
	}
	return tok.Text, nil
}

// AcceptPunct consumes the next token if it is the given punctuation rune
// and reports whether it did.
func (s *Scanner) AcceptPunct(p byte) (bool, error) {
	tok, err := s.Peek()
	if err != nil {
		return false, err
	}
	if tok.Kind == Punct && tok.Text == string(p) {
		_, _ = s.Next()
		return true, nil
	}
	return false, nil
}

// ExpectOption consumes either None or Some("...") and returns the string
// together with a presence flag.
func (s *Scanner) ExpectOption() (string, bool, error) {
	tok, err := s.Next()
	if err != nil {
		return "", false, err
	}
	if tok.Kind != Ident {
		return "", false, s.errorf("expected Some or None, found %q", tok.Text)
	}
	switch tok.Text {
	case "None":
		return "", false, nil
	case "Some":
		if err := s.ExpectPunct('('); err != nil {
			return "", false, err
		}
		value, err := s.ExpectString()
		if err != nil {
			return "", false, err
		}
		if err := s.ExpectPunct(')'); err != nil {
			return "", false, err
		}
		return value, true, nil
	default:
		return "", false, s.errorf("expected Some or None, found %q", tok.Text)
	}
}

// ExpectEOF fails unless the whole input has been consumed.
func (s *Scanner) ExpectEOF() error {
	tok, err := s.Next()
	if err != nil {
		return err
	}
	if tok.Kind != EOF {
		return s.errorf("trailing content after document: %q", tok.Text)
	}
	return nil
}

// Writer accumulates an indented RON document. The codecs emit one line
// per call and manage nesting through Push and Pop.
type Writer struct {
	sb     strings.Builder
	depth  int
	indent string
}

// NewWriter returns a writer using two-space indentation, matching the
// fragment files the tool has always produced.
func NewWriter() *Writer {
	return &Writer{indent: "  "}
}

// Line writes one indented line.
func (w *Writer) Line(format string, args ...any) {
	for i := 0; i < w.depth; i++ {
		w.sb.WriteString(w.indent)
	}
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// Push increases the indentation depth.
func (w *Writer) Push() { w.depth++ }

// Pop decreases the indentation depth.
func (w *Writer) Pop() { w.depth-- }

// String returns the accumulated document.
func (w *Writer) String() string { return w.sb.String() }

// Quote renders a string literal with the escape set the scanner accepts.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Option renders Some("...") or None.
func Option(value string, present bool) string {
	if !present {
		return "None"
	}
	return "Some(" + Quote(value) + ")"
}
