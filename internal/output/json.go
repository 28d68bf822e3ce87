package output

import (
	"encoding/json"

	"pg2sqlite/internal/convert"
	"pg2sqlite/internal/filter"
	"pg2sqlite/internal/rewrite"
)

type jsonFormatter struct{}

type reportSummary struct {
	Statements   int `json:"statements"`
	Rewrites     int `json:"rewrites"`
	RulesApplied int `json:"rulesApplied"`
}

type reportPayload struct {
	Format     string        `json:"format"`
	Input      string        `json:"input,omitempty"`
	Output     string        `json:"output,omitempty"`
	Summary    reportSummary `json:"summary"`
	Lines      filter.Stats  `json:"lines"`
	Rules      []rewrite.Hit `json:"rules,omitempty"`
	Statements []string      `json:"statements,omitempty"`
}

func (jsonFormatter) FormatReport(r *convert.Result) (string, error) {
	payload := reportPayload{Format: string(FormatJSON)}
	if r != nil {
		applied := appliedHits(r.Hits)
		payload.Input = r.Input
		payload.Output = r.Output
		payload.Lines = r.Lines
		payload.Rules = applied
		payload.Statements = r.Statements
		payload.Summary = reportSummary{
			Statements:   len(r.Statements),
			Rewrites:     totalMatches(applied),
			RulesApplied: len(applied),
		}
	}
	return marshalJSON(payload)
}

func marshalJSON(payload reportPayload) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
