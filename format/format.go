// Package format renders parse trees and span tables for people and tools.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/cyk/parsetree"
)

// Encoder writes a parse tree to an underlying writer in one format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parsetree.Node) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"text", "bracket", "json", "dot"}

// NewEncoder returns the encoder for the named format writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w), nil
	case "bracket":
		return NewBracketEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "dot":
		return NewDOTEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// encodeWith is the shared Encode implementation: it remembers the tree,
// marshals it and writes the result.
func encodeWith(w io.Writer, tree **parsetree.Node, value *parsetree.Node, m encoding.TextMarshaler) error {
	*tree = value
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

type BracketEncoder struct {
	w    io.Writer
	tree *parsetree.Node
}

func NewBracketEncoder(w io.Writer) *BracketEncoder {
	return &BracketEncoder{w: w}
}

func (e *BracketEncoder) Encode(tree *parsetree.Node) error {
	return encodeWith(e.w, &e.tree, tree, e)
}

func (e *BracketEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errNoTree
	}
	return []byte(e.tree.String() + "\n"), nil
}

var errNoTree = errors.New("no parse tree to encode")
