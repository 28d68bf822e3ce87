package output

import (
	"fmt"
	"strings"

	"pg2sqlite/internal/convert"
	"pg2sqlite/internal/rewrite"
)

type summaryFormatter struct{}

// FormatReport formats a conversion result as a compact summary.
// Example output:
//
//	Conversion Summary
//	==================
//
//	Statements:  12
//	Lines:       80 total, 12 kept, 30 dropped, 36 blank, 2 comments
//	Rewrites:    41 across 7 rules
func (summaryFormatter) FormatReport(r *convert.Result) (string, error) {
	if r == nil {
		return "No conversion performed.\n", nil
	}

	var sb strings.Builder

	applied := appliedHits(r.Hits)

	sb.WriteString("Conversion Summary\n")
	sb.WriteString("==================\n\n")

	if r.Input != "" || r.Output != "" {
		fmt.Fprintf(&sb, "Input:       %s\n", r.Input)
		fmt.Fprintf(&sb, "Output:      %s\n", r.Output)
	}
	fmt.Fprintf(&sb, "Statements:  %d\n", len(r.Statements))
	fmt.Fprintf(&sb, "Lines:       %d total, %d kept, %d dropped, %d blank, %d comments\n",
		r.Lines.Total, r.Lines.Kept, r.Lines.Dropped, r.Lines.Blank, r.Lines.Comments)
	fmt.Fprintf(&sb, "Rewrites:    %d across %d rules\n", totalMatches(applied), len(applied))

	writeRuleDetails(&sb, applied)

	return sb.String(), nil
}

func writeRuleDetails(sb *strings.Builder, applied []rewrite.Hit) {
	if len(applied) == 0 {
		return
	}

	width := 0
	for _, h := range applied {
		width = max(width, len(h.Rule))
	}

	sb.WriteString("\nRules:\n")
	for _, h := range applied {
		fmt.Fprintf(sb, "  %-*s  %d\n", width, h.Rule, h.Matches)
	}
}
