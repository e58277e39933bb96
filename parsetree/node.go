// Package parsetree provides derivation trees for words of a context-free
// grammar.
package parsetree

import (
	"strings"

	"github.com/dhamidi/cyk/grammar"
)

// Span is the 1-based inclusive range of input positions a node covers.
// Nodes over the empty word have a zero Span.
type Span struct {
	Start int
	End   int
}

// Len returns the number of input symbols covered by s. Positions are
// 1-based, so a span starting at 0 is empty.
func (s Span) Len() int {
	if s.Start == 0 || s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// Node is a node in a parse tree.
// Leaf nodes hold a terminal and have no children; interior nodes hold a
// variable and one or two children.
type Node struct {
	Symbol   grammar.Symbol
	Children []*Node
	Span     Span
}

// NewLeaf creates a leaf for the terminal t read at input position pos.
func NewLeaf(t grammar.Symbol, pos int) *Node {
	return &Node{Symbol: t, Span: Span{Start: pos, End: pos}}
}

// NewEpsilon creates the leaf standing for the empty word.
func NewEpsilon() *Node {
	return &Node{Symbol: grammar.Terminal("")}
}

// NewInternal creates an interior node for the variable v.
func NewInternal(v grammar.Symbol, children ...*Node) *Node {
	n := &Node{Symbol: v}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

// AddChild appends a child node and updates the span.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if child.Span.Len() == 0 {
		return
	}
	if n.Span.Len() == 0 {
		n.Span = child.Span
		return
	}
	n.Span.End = child.Span.End
}

// IsLeaf returns true if n holds a terminal.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && n.Symbol.IsTerminal()
}

// IsEpsilon returns true if n is the ε leaf.
func (n *Node) IsEpsilon() bool {
	return n.IsLeaf() && n.Symbol.Name == ""
}

// Yield returns the terminals at the leaves of the tree, left to right.
// ε leaves contribute nothing.
func (n *Node) Yield() grammar.Word {
	var w grammar.Word
	n.Walk(func(node *Node) bool {
		if node.IsLeaf() && !node.IsEpsilon() {
			w = append(w, node.Symbol)
		}
		return true
	})
	if w == nil {
		return grammar.Empty
	}
	return w
}

// Walk calls fn for every node in pre-order. Returning false from fn skips
// the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// Size returns the number of nodes in the tree.
func (n *Node) Size() int {
	size := 0
	n.Walk(func(*Node) bool {
		size++
		return true
	})
	return size
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (n *Node) Depth() int {
	type frame struct {
		node  *Node
		depth int
	}
	max := 0
	stack := []frame{{n, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > max {
			max = f.depth
		}
		for _, child := range f.node.Children {
			stack = append(stack, frame{child, f.depth + 1})
		}
	}
	return max
}

// Equal reports whether n and other have the same shape and symbols.
// Spans are not compared.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Symbol != other.Symbol || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree in bracket notation, for example
// [S [E x] [G [P +] [T x]]].
func (n *Node) String() string {
	var sb strings.Builder
	n.writeBracketed(&sb)
	return sb.String()
}

func (n *Node) writeBracketed(sb *strings.Builder) {
	if n.IsEpsilon() {
		sb.WriteString("ε")
		return
	}
	if n.IsLeaf() {
		sb.WriteString(n.Symbol.Name)
		return
	}
	sb.WriteByte('[')
	sb.WriteString(n.Symbol.Name)
	for _, child := range n.Children {
		sb.WriteByte(' ')
		child.writeBracketed(sb)
	}
	sb.WriteByte(']')
}
