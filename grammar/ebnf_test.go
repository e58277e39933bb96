package grammar

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadArithmetic(t *testing.T) {
	g, err := Load(filepath.Join("testdata", "arith.ebnf"), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Arithmetic(false)
	if g.Start() != Variable("S") {
		t.Errorf("Start() = %v, want S", g.Start())
	}
	if !g.IsInChomskyNormalForm() {
		t.Errorf("loaded grammar not in CNF: %v", g.Violations())
	}
	if len(g.Rules()) != len(want.Rules()) {
		t.Fatalf("len(Rules()) = %d, want %d", len(g.Rules()), len(want.Rules()))
	}
	for i, r := range g.Rules() {
		w := want.Rules()[i]
		if r.LHS != w.LHS || !r.RHS.Equal(w.RHS) {
			t.Errorf("rule %d = %s, want %s", i+1, r, w)
		}
		if r.Pos.Line == 0 {
			t.Errorf("rule %d has no source position", i+1)
		}
	}
	if len(g.Terminals()) != 6 {
		t.Errorf("len(Terminals()) = %d, want 6", len(g.Terminals()))
	}
}

func TestLoadEpsilon(t *testing.T) {
	g, err := Load(filepath.Join("testdata", "balanced.ebnf"), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !g.DerivesEmpty() {
		t.Error("DerivesEmpty() = false, want true")
	}
	if !g.IsInChomskyNormalForm() {
		t.Errorf("balanced grammar not in CNF: %v", g.Violations())
	}
}

func TestLoadNotCNF(t *testing.T) {
	g, err := Load(filepath.Join("testdata", "notcnf.ebnf"), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if g.IsInChomskyNormalForm() {
		t.Fatal("IsInChomskyNormalForm() = true, want false")
	}
	if got := len(g.Violations()); got != 3 {
		t.Errorf("len(Violations()) = %d, want 3: %v", got, g.Violations())
	}
}

func TestParseStartOverride(t *testing.T) {
	src := `
		S = A A .
		A = "a" | B B .
		B = "b" .
	`
	g, err := Parse("override", strings.NewReader(src), "A")
	if err == nil {
		t.Fatalf("Parse() with unreachable S succeeded: %v", g)
	}

	g, err = Parse("override", strings.NewReader(src), "S")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if g.Start() != Variable("S") {
		t.Errorf("Start() = %v, want S", g.Start())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
		line int
	}{
		{"option", "option.ebnf", "options are not supported", 1},
		{"syntax", "broken.ebnf", "expected", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(filepath.Join("testdata", tt.file), "")
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			problems := Problems(err)
			if len(problems) == 0 {
				t.Fatalf("Problems(%v) is empty", err)
			}
			if !strings.Contains(problems[0].Msg, tt.want) {
				t.Errorf("problem %q does not mention %q", problems[0].Msg, tt.want)
			}
			if problems[0].Pos.Line != tt.line {
				t.Errorf("problem line = %d, want %d", problems[0].Pos.Line, tt.line)
			}
		})
	}
}

func TestParseRejectsMisplacedEpsilon(t *testing.T) {
	_, err := Parse("eps", strings.NewReader(`S = "" "a" .`), "")
	if err == nil {
		t.Fatal("Parse() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "only term") {
		t.Errorf("error %q does not mention the misplaced ε", err)
	}
}

func TestProblemsPlainError(t *testing.T) {
	problems := Problems(&Problem{Msg: "boom"})
	if len(problems) != 1 || problems[0].Msg != "boom" {
		t.Errorf("Problems() = %v", problems)
	}
	if Problems(nil) != nil {
		t.Error("Problems(nil) != nil")
	}
}
