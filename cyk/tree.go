package cyk

import (
	"fmt"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parsetree"
)

// ConsistencyFault is the panic value raised when the decode phase finds a
// recorded variable without a usable derivation. It signals a defect in the
// fill phase and is never returned as an error.
type ConsistencyFault struct {
	Span     Span
	Variable grammar.Symbol
	Reason   string
}

func (f *ConsistencyFault) Error() string {
	return fmt.Sprintf("cyk: inconsistent table at %s for %s: %s", f.Span, f.Variable.Name, f.Reason)
}

type buildTask struct {
	node     *parsetree.Node
	variable int
	span     Span
}

// decode builds the parse tree for the start variable over the full span of
// a filled table. It returns nil when the start variable was not recorded.
// The walk uses an explicit stack, so tree depth is not limited by the
// goroutine stack.
func decode(t *Table) *parsetree.Node {
	if !t.Accepts() {
		return nil
	}

	x := t.index
	root := &parsetree.Node{
		Symbol: x.variables[x.start],
		Span:   parsetree.Span{Start: 1, End: t.n},
	}

	stack := []buildTask{{node: root, variable: x.start, span: Span{I: 1, J: t.n}}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j := task.span.I, task.span.J
		e, ok := t.cell(i, j).get(task.variable)
		if !ok {
			panic(&ConsistencyFault{Span: task.span, Variable: x.variables[task.variable], Reason: "variable not recorded"})
		}

		if i == j {
			task.node.Children = []*parsetree.Node{parsetree.NewLeaf(t.word.At(i), i)}
			continue
		}

		k := e.split
		if k < i || k >= j {
			panic(&ConsistencyFault{Span: task.span, Variable: x.variables[task.variable], Reason: fmt.Sprintf("split point %d outside span", k)})
		}

		left := &parsetree.Node{
			Symbol: x.variables[e.left],
			Span:   parsetree.Span{Start: i, End: k},
		}
		right := &parsetree.Node{
			Symbol: x.variables[e.right],
			Span:   parsetree.Span{Start: k + 1, End: j},
		}
		task.node.Children = []*parsetree.Node{left, right}

		stack = append(stack,
			buildTask{node: right, variable: e.right, span: Span{I: k + 1, J: j}},
			buildTask{node: left, variable: e.left, span: Span{I: i, J: k}},
		)
	}

	return root
}
