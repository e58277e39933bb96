// Package grammar describes context-free grammars: symbols, words, rules and
// the Chomsky Normal Form predicate the recognizer depends on.
package grammar

import (
	"strconv"
	"strings"
)

// Kind tags a Symbol as either a terminal or a variable.
type Kind uint8

const (
	KindTerminal Kind = iota + 1
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "Terminal"
	case KindVariable:
		return "Variable"
	}
	return "Unknown"
}

// Symbol is a terminal or a variable. Symbols are comparable values and may be
// used as map keys.
type Symbol struct {
	Kind Kind
	Name string
}

// Terminal returns the terminal symbol for the atom name.
func Terminal(name string) Symbol {
	return Symbol{Kind: KindTerminal, Name: name}
}

// Variable returns the variable symbol with the given identifier.
func Variable(name string) Symbol {
	return Symbol{Kind: KindVariable, Name: name}
}

func (s Symbol) IsTerminal() bool {
	return s.Kind == KindTerminal
}

func (s Symbol) IsVariable() bool {
	return s.Kind == KindVariable
}

// String renders variables bare and terminals quoted, matching the EBNF
// notation grammar files are written in.
func (s Symbol) String() string {
	if s.IsTerminal() {
		return strconv.Quote(s.Name)
	}
	return s.Name
}

// Word is an ordered, possibly empty sequence of symbols. It represents both
// right-hand sides of rules and input strings. Methods never modify the
// receiver.
type Word []Symbol

// Empty is the word of length zero.
var Empty = Word{}

// NewWord copies symbols into a fresh word.
func NewWord(symbols ...Symbol) Word {
	w := make(Word, len(symbols))
	copy(w, symbols)
	return w
}

// TerminalWord builds a word of one terminal per rune of s.
func TerminalWord(s string) Word {
	w := make(Word, 0, len(s))
	for _, r := range s {
		w = append(w, Terminal(string(r)))
	}
	return w
}

func (w Word) Len() int {
	return len(w)
}

// At returns the symbol at the 1-based position i.
func (w Word) At(i int) Symbol {
	return w[i-1]
}

// IsTerminal reports whether every symbol of w is a terminal. The empty word
// is terminal.
func (w Word) IsTerminal() bool {
	for _, s := range w {
		if !s.IsTerminal() {
			return false
		}
	}
	return true
}

func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

// Text concatenates the names of the symbols in w.
func (w Word) Text() string {
	var sb strings.Builder
	for _, s := range w {
		sb.WriteString(s.Name)
	}
	return sb.String()
}

func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	parts := make([]string, len(w))
	for i, s := range w {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
