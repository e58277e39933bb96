package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cyk/parsetree"
)

// TextEncoder draws a tree with box-drawing guides, one node per line:
//
//	S (1,3)
//	├── E (1,1)
//	│   └── x
//	└── G (2,3)
type TextEncoder struct {
	w    io.Writer
	tree *parsetree.Node
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(tree *parsetree.Node) error {
	return encodeWith(e.w, &e.tree, tree, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errNoTree
	}
	var sb strings.Builder
	sb.WriteString(label(e.tree))
	sb.WriteByte('\n')
	writeChildren(&sb, e.tree, "")
	return []byte(sb.String()), nil
}

func writeChildren(sb *strings.Builder, n *parsetree.Node, prefix string) {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(label(child))
		sb.WriteByte('\n')
		writeChildren(sb, child, prefix+indent)
	}
}

func label(n *parsetree.Node) string {
	switch {
	case n.IsEpsilon():
		return "ε"
	case n.IsLeaf():
		return n.Symbol.Name
	case n.Span.Len() == 0:
		return n.Symbol.Name
	}
	return fmt.Sprintf("%s (%d,%d)", n.Symbol.Name, n.Span.Start, n.Span.End)
}
