package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cyk/cyk"
)

// ChartEncoder lists the cells of a filled span table in fill order, one span
// per line. Variables over longer spans show their split point and children:
//
//	(1,3)  S[1: E G]  E[1: E G]
//
// Empty cells are omitted unless All is set.
type ChartEncoder struct {
	w   io.Writer
	All bool
}

func NewChartEncoder(w io.Writer) *ChartEncoder {
	return &ChartEncoder{w: w}
}

func (e *ChartEncoder) Encode(t *cyk.Table) error {
	var sb strings.Builder
	t.Spans(func(s cyk.Span) {
		vars := t.Variables(s.I, s.J)
		if len(vars) == 0 && !e.All {
			return
		}
		sb.WriteString(s.String())
		if len(vars) == 0 {
			sb.WriteString("  ∅")
		}
		for _, v := range vars {
			sb.WriteString("  ")
			bp, ok := t.Backpointer(s.I, s.J, v)
			if !ok {
				sb.WriteString(v.Name)
				continue
			}
			fmt.Fprintf(&sb, "%s[%d: %s %s]", v.Name, bp.Split, bp.Left.Name, bp.Right.Name)
		}
		sb.WriteByte('\n')
	})
	_, err := io.WriteString(e.w, sb.String())
	return err
}
