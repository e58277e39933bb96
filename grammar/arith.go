package grammar

// Arithmetic returns the CNF grammar of arithmetic expressions over the
// terminals 0, 1, x, +, * and - with start variable S. Sums are built from
// E G with G → P T, products from T H with H → M F, and negation from N C.
//
// With epsilon set, the grammar also contains S → ε and accepts the empty
// word. S never occurs on a right-hand side, so the result stays in CNF.
func Arithmetic(epsilon bool) *Grammar {
	var (
		plus     = Terminal("+")
		multiply = Terminal("*")
		negate   = Terminal("-")
		one      = Terminal("1")
		zero     = Terminal("0")
		x        = Terminal("x")

		S = Variable("S")
		E = Variable("E")
		T = Variable("T")
		F = Variable("F")
		G = Variable("G")
		H = Variable("H")
		C = Variable("C")
		P = Variable("P")
		M = Variable("M")
		N = Variable("N")
	)

	rules := []Rule{
		NewRule(S, E, G),
		NewRule(S, T, H),
		NewRule(S, N, C),
		NewRule(S, one),
		NewRule(S, zero),
		NewRule(S, x),
		NewRule(E, E, G),
		NewRule(E, T, H),
		NewRule(E, N, C),
		NewRule(E, one),
		NewRule(E, zero),
		NewRule(E, x),
		NewRule(T, T, H),
		NewRule(T, N, C),
		NewRule(T, one),
		NewRule(T, zero),
		NewRule(T, x),
		NewRule(F, N, C),
		NewRule(F, one),
		NewRule(F, zero),
		NewRule(F, x),
		NewRule(G, P, T),
		NewRule(H, M, F),
		NewRule(C, one),
		NewRule(C, zero),
		NewRule(C, x),
		NewRule(P, plus),
		NewRule(M, multiply),
		NewRule(N, negate),
	}
	if epsilon {
		rules = append(rules, NewRule(S))
	}

	g, err := New(
		[]Symbol{S, E, T, F, G, H, C, P, M, N},
		[]Symbol{plus, multiply, negate, one, zero, x},
		rules,
		S,
	)
	if err != nil {
		panic(err)
	}
	return g
}
