// Package output provides a set of formatters for conversion reports.
// It is extendable and for now provides three formats: summary, JSON and SQL.
package output

import (
	"fmt"
	"strings"

	"pg2sqlite/internal/convert"
	"pg2sqlite/internal/rewrite"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatSummary Format = "summary"
	FormatJSON    Format = "json"
	FormatSQL     Format = "sql"
)

// Formatter is an interface for formatting conversion results.
type Formatter interface {
	FormatReport(*convert.Result) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to summary format.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatSummary:
		return summaryFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatSQL:
		return sqlFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'summary', 'json', or 'sql'", name)
	}
}

// appliedHits drops rules that did not match anything.
func appliedHits(hits []rewrite.Hit) []rewrite.Hit {
	var out []rewrite.Hit
	for _, h := range hits {
		if h.Matches > 0 {
			out = append(out, h)
		}
	}
	return out
}

func totalMatches(hits []rewrite.Hit) int {
	n := 0
	for _, h := range hits {
		n += h.Matches
	}
	return n
}
