package cyk

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parsetree"
)

func TestArithmeticScenarios(t *testing.T) {
	p := New(grammar.Arithmetic(false))

	tests := []struct {
		input string
		want  string
	}{
		{"x", "[S x]"},
		{"x+x", "[S [E x] [G [P +] [T x]]]"},
		{"x*x+x", "[S [E [T x] [H [M *] [F x]]] [G [P +] [T x]]]"},
		{"-1", "[S [N -] [C 1]]"},
		{"x*-0", "[S [T x] [H [M *] [F [N -] [C 0]]]]"},
		{"++", ""},
		{"x+", ""},
		{"x x", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w := grammar.TerminalWord(tt.input)
			accepted := tt.want != ""

			if got := p.Recognize(w); got != accepted {
				t.Fatalf("Recognize(%q) = %v, want %v", tt.input, got, accepted)
			}

			tree := p.Tree(w)
			if !accepted {
				if tree != nil {
					t.Errorf("Tree(%q) = %v, want nil", tt.input, tree)
				}
				return
			}
			if tree == nil {
				t.Fatalf("Tree(%q) = nil", tt.input)
			}
			if got := tree.String(); got != tt.want {
				t.Errorf("Tree(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if !tree.Yield().Equal(w) {
				t.Errorf("Yield() = %v, want %v", tree.Yield(), w)
			}
		})
	}
}

func TestSingleSymbolTreeShape(t *testing.T) {
	tree := BuildTree(grammar.Arithmetic(false), grammar.TerminalWord("x"))
	if tree == nil {
		t.Fatal("BuildTree(x) = nil")
	}
	if tree.Symbol != grammar.Variable("S") {
		t.Errorf("root = %v, want S", tree.Symbol)
	}
	if len(tree.Children) != 1 || !tree.Children[0].IsLeaf() {
		t.Fatalf("root children = %v, want a single leaf", tree.Children)
	}
	if tree.Children[0].Symbol != grammar.Terminal("x") {
		t.Errorf("leaf = %v, want x", tree.Children[0].Symbol)
	}
}

func TestParseReasons(t *testing.T) {
	S, A, B := grammar.Variable("S"), grammar.Variable("A"), grammar.Variable("B")
	a, b := grammar.Terminal("a"), grammar.Terminal("b")
	notCNF, err := grammar.New(
		[]grammar.Symbol{S, A, B},
		[]grammar.Symbol{a, b},
		[]grammar.Rule{grammar.NewRule(S, A, B, A), grammar.NewRule(A, a), grammar.NewRule(B, b)},
		S,
	)
	if err != nil {
		t.Fatalf("grammar.New() error: %v", err)
	}

	tests := []struct {
		name string
		g    Grammar
		word string
		want error
	}{
		{"not in normal form", notCNF, "aba", ErrNotInNormalForm},
		{"not in normal form empty", notCNF, "", ErrNotInNormalForm},
		{"empty without epsilon", grammar.Arithmetic(false), "", ErrEmptyWordNotDerivable},
		{"not in language", grammar.Arithmetic(false), "++", ErrNotInLanguage},
		{"unknown terminal", grammar.Arithmetic(false), "y", ErrNotInLanguage},
		{"accepted", grammar.Arithmetic(false), "1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := New(tt.g).Parse(grammar.TerminalWord(tt.word))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}
			if (tree == nil) != (tt.want != nil) {
				t.Errorf("Parse() tree = %v with error %v", tree, err)
			}
		})
	}
}

func TestEmptyWord(t *testing.T) {
	if Recognize(grammar.Arithmetic(false), grammar.Empty) {
		t.Error("empty word accepted without S → ε")
	}

	g := grammar.Arithmetic(true)
	if !Recognize(g, grammar.Empty) {
		t.Fatal("empty word rejected with S → ε")
	}
	tree := BuildTree(g, grammar.Empty)
	if tree == nil {
		t.Fatal("BuildTree(ε) = nil")
	}
	if tree.Yield().Len() != 0 {
		t.Errorf("Yield() = %v, want ε", tree.Yield())
	}
	if got := tree.String(); got != "[S ε]" {
		t.Errorf("tree = %s, want [S ε]", got)
	}

	// ε acceptance does not leak into non-empty words.
	if Recognize(g, grammar.TerminalWord("x+")) {
		t.Error("x+ accepted")
	}
}

func TestChart(t *testing.T) {
	p := New(grammar.Arithmetic(false))
	table, err := p.Chart(grammar.TerminalWord("x+x"))
	if err != nil {
		t.Fatalf("Chart() error: %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if got := table.Variables(1, 1); !equalNames(got, []string{"S", "E", "T", "F", "C"}) {
		t.Errorf("Variables(1,1) = %v", names(got))
	}
	if got := table.Variables(1, 2); len(got) != 0 {
		t.Errorf("Variables(1,2) = %v, want none", names(got))
	}
	if got := table.Variables(2, 3); !equalNames(got, []string{"G"}) {
		t.Errorf("Variables(2,3) = %v, want [G]", names(got))
	}
	if got := table.Variables(1, 3); !equalNames(got, []string{"S", "E"}) {
		t.Errorf("Variables(1,3) = %v, want [S E]", names(got))
	}

	bp, ok := table.Backpointer(1, 3, grammar.Variable("S"))
	if !ok {
		t.Fatal("no backpointer for S over (1,3)")
	}
	want := Backpointer{Split: 1, Left: grammar.Variable("E"), Right: grammar.Variable("G")}
	if bp != want {
		t.Errorf("Backpointer(1,3,S) = %+v, want %+v", bp, want)
	}

	if _, ok := table.Backpointer(1, 1, grammar.Variable("S")); ok {
		t.Error("terminal-derived S over (1,1) has a backpointer")
	}
	if !table.Has(1, 1, grammar.Variable("C")) {
		t.Error("C missing from (1,1)")
	}
	if table.Has(1, 3, grammar.Variable("Q")) {
		t.Error("unknown variable reported present")
	}

	var spans []string
	table.Spans(func(s Span) { spans = append(spans, s.String()) })
	if got := strings.Join(spans, " "); got != "(1,1) (2,2) (3,3) (1,2) (2,3) (1,3)" {
		t.Errorf("Spans() order = %s", got)
	}
}

func TestChartRejectedKeepsTable(t *testing.T) {
	table, err := New(grammar.Arithmetic(false)).Chart(grammar.TerminalWord("x+"))
	if !errors.Is(err, ErrNotInLanguage) {
		t.Fatalf("Chart() error = %v, want ErrNotInLanguage", err)
	}
	if table == nil {
		t.Fatal("Chart() returned no table for a rejected word")
	}
	if table.Accepts() {
		t.Error("Accepts() = true for a rejected word")
	}
}

// ambiguous builds S → A A | S S, A → A A | a, which derives every word a^n
// (n ≥ 2) in many ways.
func ambiguous(t *testing.T) *grammar.Grammar {
	t.Helper()
	S, A := grammar.Variable("S"), grammar.Variable("A")
	a := grammar.Terminal("a")
	g, err := grammar.New(
		[]grammar.Symbol{S, A},
		[]grammar.Symbol{a},
		[]grammar.Rule{
			grammar.NewRule(S, A, A),
			grammar.NewRule(S, S, S),
			grammar.NewRule(A, A, A),
			grammar.NewRule(A, a),
		},
		S,
	)
	if err != nil {
		t.Fatalf("grammar.New() error: %v", err)
	}
	return g
}

func TestTieBreakSmallestSplit(t *testing.T) {
	p := New(ambiguous(t))
	table, err := p.Chart(grammar.TerminalWord("aaaa"))
	if err != nil {
		t.Fatalf("Chart() error: %v", err)
	}

	bp, ok := table.Backpointer(1, 4, grammar.Variable("S"))
	if !ok {
		t.Fatal("no backpointer for S over (1,4)")
	}
	if bp.Split != 1 {
		t.Errorf("split = %d, want 1", bp.Split)
	}
	if bp.Left != grammar.Variable("A") || bp.Right != grammar.Variable("A") {
		t.Errorf("children = %s %s, want A A", bp.Left.Name, bp.Right.Name)
	}

	want := "[S [A a] [A [A a] [A [A a] [A a]]]]"
	if got := p.Tree(grammar.TerminalWord("aaaa")).String(); got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestTieBreakDeclarationOrder(t *testing.T) {
	S, A, B, C, D := grammar.Variable("S"), grammar.Variable("A"), grammar.Variable("B"), grammar.Variable("C"), grammar.Variable("D")
	a, b := grammar.Terminal("a"), grammar.Terminal("b")

	// A and B are found first in their cells, but S → C D is declared first.
	g, err := grammar.New(
		[]grammar.Symbol{S, A, B, C, D},
		[]grammar.Symbol{a, b},
		[]grammar.Rule{
			grammar.NewRule(S, C, D),
			grammar.NewRule(S, A, B),
			grammar.NewRule(A, a),
			grammar.NewRule(C, a),
			grammar.NewRule(B, b),
			grammar.NewRule(D, b),
		},
		S,
	)
	if err != nil {
		t.Fatalf("grammar.New() error: %v", err)
	}

	tree := BuildTree(g, grammar.TerminalWord("ab"))
	if got, want := tree.String(), "[S [C a] [D b]]"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := []string{"aaaaaaa", "aaaaaaaaaaaa"}
	for _, input := range inputs {
		w := grammar.TerminalWord(input)
		first := BuildTree(ambiguous(t), w)
		if first == nil {
			t.Fatalf("BuildTree(%q) = nil", input)
		}
		for i := 0; i < 20; i++ {
			if again := BuildTree(ambiguous(t), w); !again.Equal(first) {
				t.Fatalf("run %d produced %s, want %s", i, again, first)
			}
		}
	}
}

func TestLongInput(t *testing.T) {
	p := New(grammar.Arithmetic(false))

	var sb strings.Builder
	sb.WriteString("x")
	for i := 0; i < 30; i++ {
		if i%3 == 0 {
			sb.WriteString("*-1")
		} else {
			sb.WriteString("+x")
		}
	}
	input := sb.String()
	if len(input) < 50 {
		t.Fatalf("input too short: %d", len(input))
	}

	w := grammar.TerminalWord(input)
	tree, err := p.Parse(w)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !tree.Yield().Equal(w) {
		t.Errorf("Yield() = %s, want %s", tree.Yield().Text(), input)
	}
	if tree.Span != (parsetree.Span{Start: 1, End: len(w)}) {
		t.Errorf("root span = %+v", tree.Span)
	}

	if p.Recognize(grammar.TerminalWord(input + "+")) {
		t.Error("long input with trailing operator accepted")
	}
}

func TestDecodePanicsOnInconsistentTable(t *testing.T) {
	x := NewIndex(grammar.Arithmetic(false))
	table := newTable(x, grammar.TerminalWord("x+"))
	table.cell(1, 1).add(entry{variable: x.ids[grammar.Variable("E")]})
	// S over (1,2) claims G covers (2,2), which was never recorded.
	table.cell(1, 2).add(entry{
		variable: x.start,
		split:    1,
		left:     x.ids[grammar.Variable("E")],
		right:    x.ids[grammar.Variable("G")],
	})

	defer func() {
		r := recover()
		fault, ok := r.(*ConsistencyFault)
		if !ok {
			t.Fatalf("recovered %v, want *ConsistencyFault", r)
		}
		if fault.Span != (Span{I: 2, J: 2}) || fault.Variable != grammar.Variable("G") {
			t.Errorf("fault = %v", fault)
		}
	}()
	decode(table)
	t.Fatal("decode() did not panic")
}

func TestRecognizeAll(t *testing.T) {
	p := New(grammar.Arithmetic(false))
	inputs := []string{"x", "++", "x+x", "", "x*x+x", "x+", "-0", "1*1*1"}
	words := make([]grammar.Word, len(inputs))
	for i, in := range inputs {
		words[i] = grammar.TerminalWord(in)
	}

	got, err := p.RecognizeAll(context.Background(), words, 3)
	if err != nil {
		t.Fatalf("RecognizeAll() error: %v", err)
	}
	for i, w := range words {
		if want := p.Recognize(w); got[i] != want {
			t.Errorf("result %d (%q) = %v, want %v", i, inputs[i], got[i], want)
		}
	}
}

func TestRecognizeAllCancelledDispatchesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	words := make([]grammar.Word, 200)
	for i := range words {
		words[i] = grammar.TerminalWord("x")
	}
	for run := 0; run < 20; run++ {
		got, err := New(grammar.Arithmetic(false)).RecognizeAll(ctx, words, 8)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("RecognizeAll() error = %v, want context.Canceled", err)
		}
		for i, ok := range got {
			if ok {
				t.Fatalf("run %d: word %d recognized after cancellation", run, i)
			}
		}
	}
}

func TestRecognizeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	words := []grammar.Word{grammar.TerminalWord("x"), grammar.TerminalWord("x+x")}
	_, err := New(grammar.Arithmetic(false)).RecognizeAll(ctx, words, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RecognizeAll() error = %v, want context.Canceled", err)
	}
}
