package output

import (
	"fmt"
	"strings"

	"pg2sqlite/internal/convert"
)

type sqlFormatter struct{}

// FormatReport formats the converted script with a commented header.
func (sqlFormatter) FormatReport(r *convert.Result) (string, error) {
	if r == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("-- pg2sqlite conversion\n")
	sb.WriteString("-- Best-effort output; review before loading.\n")
	if r.Input != "" {
		fmt.Fprintf(&sb, "-- Source: %s\n", r.Input)
	}

	if len(r.Statements) == 0 {
		sb.WriteString("\n-- No statements kept.\n")
		return sb.String(), nil
	}

	writeCommentSection(&sb, "REWRITES", ruleNotes(r))

	sb.WriteString("\n")
	for _, stmt := range r.Statements {
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func ruleNotes(r *convert.Result) []string {
	var notes []string
	for _, h := range appliedHits(r.Hits) {
		notes = append(notes, fmt.Sprintf("%s: %d", h.Rule, h.Matches))
	}
	return notes
}

func writeCommentSection(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	sb.WriteString("\n-- ")
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, l := range lines {
		sb.WriteString("-- - ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}
