package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/alphacut/internal/fuzzy"
)

// Renderer writes a plain-text summary of a run
type Renderer struct {
	showTimings bool
}

// NewRenderer creates a renderer. Timings are only printed when showTimings is set.
func NewRenderer(showTimings bool) *Renderer {
	return &Renderer{showTimings: showTimings}
}

// Render writes every input set and operation result
func (r *Renderer) Render(w io.Writer, res *Result) error {
	var sb strings.Builder

	for _, s := range res.Sets {
		fmt.Fprintf(&sb, "set %s\n", s.Name)
		writeCuts(&sb, s.Set)
	}

	for _, op := range res.Operations {
		fmt.Fprintf(&sb, "operation %s = %s %s %s [%s]", op.Operation.Name, op.Operation.Left, op.Operation.Op, op.Operation.Right, op.Tnorm)
		if op.Cached {
			sb.WriteString(" (cached)")
		}
		if r.showTimings {
			fmt.Fprintf(&sb, " %s", op.Duration)
		}
		sb.WriteString("\n")
		writeCuts(&sb, op.Set)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCuts(sb *strings.Builder, fs *fuzzy.FuzzySet) {
	if fs.Len() == 0 {
		sb.WriteString("  (empty)\n")
		return
	}
	for _, c := range fs.AlphaCuts() {
		fmt.Fprintf(sb, "  %-10s %s\n", c.Level().Value(), FormatIntervals(c))
	}
}

// FormatIntervals formats the cut as a union of closed intervals, e.g. "[0, 1] u [3, 4]"
func FormatIntervals(c fuzzy.AlphaCut) string {
	parts := make([]string, c.Left().Len())
	for i := range parts {
		parts[i] = fmt.Sprintf("[%s, %s]", c.Left().At(i), c.Right().At(i))
	}
	return strings.Join(parts, " u ")
}
