// Package lex turns raw text into words over the terminals of a grammar.
package lex

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/cyk/grammar"
)

// ErrBlankInput is returned for input that is not empty but holds nothing
// except whitespace. Such input is rejected rather than read as the empty
// word.
var ErrBlankInput = errors.New("input consists only of whitespace")

// Position represents a location in the input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one terminal read from the input.
type Token struct {
	Symbol   grammar.Symbol
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Position, t.Literal)
}

// UnknownInputError reports text that starts no terminal of the grammar.
type UnknownInputError struct {
	Position Position
	Text     string
}

func (e *UnknownInputError) Error() string {
	return fmt.Sprintf("%s: %q is not a terminal of the grammar", e.Position, e.Text)
}

// Lexer splits input into terminals by longest match. Whitespace between
// terminals is skipped unless the grammar uses it as a terminal.
type Lexer struct {
	terminals []string
	input     []byte
	filename  string
	pos       int
	line      int
	column    int
}

// NewLexer creates a lexer for the given terminals and input.
func NewLexer(terminals []grammar.Symbol, input []byte, filename string) *Lexer {
	names := make([]string, 0, len(terminals))
	for _, t := range terminals {
		if t.IsTerminal() && t.Name != "" {
			names = append(names, t.Name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	return &Lexer{
		terminals: names,
		input:     input,
		filename:  filename,
		line:      1,
		column:    1,
	}
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance(n int) {
	for _, r := range string(l.input[l.pos : l.pos+n]) {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

// match returns the longest terminal starting at the current offset.
func (l *Lexer) match() (string, bool) {
	rest := l.input[l.pos:]
	for _, t := range l.terminals {
		if len(t) <= len(rest) && string(rest[:len(t)]) == t {
			return t, true
		}
	}
	return "", false
}

// NextToken returns the next terminal in the input, or io.EOF at the end.
func (l *Lexer) NextToken() (Token, error) {
	for l.pos < len(l.input) {
		if _, ok := l.match(); ok {
			break
		}
		r, size := utf8.DecodeRune(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.advance(size)
	}

	if l.pos >= len(l.input) {
		return Token{Position: l.Position()}, io.EOF
	}

	start := l.Position()
	lit, ok := l.match()
	if !ok {
		_, size := utf8.DecodeRune(l.input[l.pos:])
		return Token{}, &UnknownInputError{
			Position: start,
			Text:     string(l.input[l.pos : l.pos+size]),
		}
	}
	l.advance(len(lit))

	return Token{
		Symbol:   grammar.Terminal(lit),
		Literal:  lit,
		Position: start,
	}, nil
}

// Tokenize reads all tokens from input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 && len(l.input) > 0 {
		return nil, ErrBlankInput
	}
	return tokens, nil
}

// Word returns the symbols of tokens as a word.
func Word(tokens []Token) grammar.Word {
	w := make(grammar.Word, len(tokens))
	for i, tok := range tokens {
		w[i] = tok.Symbol
	}
	return w
}

// Scan tokenizes s against terminals and returns the resulting word.
func Scan(terminals []grammar.Symbol, s string) (grammar.Word, error) {
	tokens, err := NewLexer(terminals, []byte(s), "").Tokenize()
	if err != nil {
		return nil, err
	}
	return Word(tokens), nil
}

// Describe renders w with the literal of each terminal, separated by spaces
// when any terminal is longer than one character.
func Describe(w grammar.Word) string {
	spaced := false
	for _, s := range w {
		if utf8.RuneCountInString(s.Name) > 1 {
			spaced = true
			break
		}
	}
	if !spaced {
		return w.Text()
	}
	parts := make([]string, len(w))
	for i, s := range w {
		parts[i] = s.Name
	}
	return strings.Join(parts, " ")
}
