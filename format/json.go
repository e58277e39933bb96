package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cyk/parsetree"
)

type JSONEncoder struct {
	w    io.Writer
	tree *parsetree.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parsetree.Node) error {
	return encodeWith(e.w, &e.tree, tree, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errNoTree
	}
	data, err := json.MarshalIndent(nodeToJSON(e.tree), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type jsonNode struct {
	Symbol   string      `json:"symbol"`
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func nodeToJSON(n *parsetree.Node) *jsonNode {
	jn := &jsonNode{
		Symbol: n.Symbol.Name,
		Kind:   nodeKind(n),
	}

	if n.Span.Len() > 0 {
		jn.Span = &jsonSpan{Start: n.Span.Start, End: n.Span.End}
	}

	for _, child := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(child))
	}

	return jn
}

func nodeKind(n *parsetree.Node) string {
	switch {
	case n.IsEpsilon():
		return "epsilon"
	case n.IsLeaf():
		return "terminal"
	}
	return "variable"
}
