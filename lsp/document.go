// Package lsp serves grammar files to editors over the Language Server
// Protocol: diagnostics for syntax errors and rules outside Chomsky Normal
// Form, and hover text listing the productions of a variable.
package lsp

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/cyk/grammar"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

// Diagnostic is a problem at a 1-based line and column of a document.
type Diagnostic struct {
	Line     int
	Column   int
	Length   int
	Severity Severity
	Message  string
}

// Document is the analysis of one grammar file.
type Document struct {
	URI         string
	Text        string
	Grammar     *grammar.Grammar
	Diagnostics []Diagnostic
}

// Analyze parses text as a grammar file and collects its diagnostics.
func Analyze(uri, text string) *Document {
	doc := &Document{URI: uri, Text: text}
	lines := strings.Split(text, "\n")

	g, err := grammar.Parse(uri, strings.NewReader(text), "")
	if err != nil {
		for _, p := range grammar.Problems(err) {
			doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
				Line:     max(p.Pos.Line, 1),
				Column:   max(p.Pos.Column, 1),
				Length:   wordLength(lines, p.Pos.Line, p.Pos.Column),
				Severity: SeverityError,
				Message:  p.Msg,
			})
		}
		return doc
	}

	doc.Grammar = g
	for _, v := range g.Violations() {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Line:     max(v.Rule.Pos.Line, 1),
			Column:   max(v.Rule.Pos.Column, 1),
			Length:   wordLength(lines, v.Rule.Pos.Line, v.Rule.Pos.Column),
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("not in Chomsky Normal Form: %s", v.Reason),
		})
	}
	return doc
}

// Hover returns markdown describing the variable at the 1-based line and
// column, or "" if there is none.
func (d *Document) Hover(line, column int) string {
	if d.Grammar == nil {
		return ""
	}
	name := wordAt(strings.Split(d.Text, "\n"), line, column)
	if name == "" {
		return ""
	}

	v := grammar.Variable(name)
	rules := d.Grammar.RulesFor(v)
	if len(rules) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**", name)
	if v == d.Grammar.Start() {
		sb.WriteString(" (start)")
	}
	sb.WriteString("\n\n```\n")
	for _, r := range rules {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("```")
	return sb.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordAt returns the identifier covering the 1-based column of line.
func wordAt(lines []string, line, column int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	runes := []rune(lines[line-1])
	i := column - 1
	if i < 0 || i > len(runes) {
		return ""
	}
	if i == len(runes) || !isIdentRune(runes[i]) {
		if i == 0 || !isIdentRune(runes[i-1]) {
			return ""
		}
		i--
	}
	start, end := i, i
	for start > 0 && isIdentRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isIdentRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

// wordLength is the number of characters of the token starting at the
// 1-based column, at least one.
func wordLength(lines []string, line, column int) int {
	if line < 1 || line > len(lines) || column < 1 {
		return 1
	}
	rest := lines[line-1]
	for col := 1; col < column && rest != ""; col++ {
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
	}
	n := 0
	for _, r := range rest {
		if !isIdentRune(r) {
			break
		}
		n++
	}
	return max(n, 1)
}
