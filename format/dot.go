package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/cyk/parsetree"
)

// DOTEncoder writes a tree as a Graphviz digraph. Variables are drawn as
// ellipses and terminals as plain text, with edges in child order.
type DOTEncoder struct {
	w    io.Writer
	tree *parsetree.Node
}

func NewDOTEncoder(w io.Writer) *DOTEncoder {
	return &DOTEncoder{w: w}
}

func (e *DOTEncoder) Encode(tree *parsetree.Node) error {
	return encodeWith(e.w, &e.tree, tree, e)
}

func (e *DOTEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errNoTree
	}

	var sb strings.Builder
	sb.WriteString("digraph parse {\n")
	sb.WriteString("  node [fontname=\"monospace\"];\n")

	ids := make(map[*parsetree.Node]int)
	e.tree.Walk(func(n *parsetree.Node) bool {
		id := len(ids)
		ids[n] = id
		shape := "ellipse"
		if n.IsLeaf() {
			shape = "plaintext"
		}
		fmt.Fprintf(&sb, "  n%d [label=%s, shape=%s];\n", id, strconv.Quote(label(n)), shape)
		return true
	})
	e.tree.Walk(func(n *parsetree.Node) bool {
		for _, child := range n.Children {
			fmt.Fprintf(&sb, "  n%d -> n%d;\n", ids[n], ids[child])
		}
		return true
	})

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}
