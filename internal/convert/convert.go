// Package convert turns a PostgreSQL dump into a SQLite script. It is a
// linear text pipeline: the rewrite table runs over the whole dump, then the
// statement filter keeps the lines SQLite can take.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pg2sqlite/internal/filter"
	"pg2sqlite/internal/rewrite"
)

// Options configures a Converter. Zero values select the defaults.
type Options struct {
	// Rules is the rewrite table (default rewrite.Default()).
	Rules *rewrite.RuleSet
	// Progress receives the start and completion lines (default os.Stdout).
	Progress io.Writer
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Converter converts PostgreSQL dumps into SQLite scripts.
type Converter struct {
	rules    *rewrite.RuleSet
	progress io.Writer
	logger   *slog.Logger
}

// Result describes one conversion.
type Result struct {
	Input      string
	Output     string
	Hits       []rewrite.Hit
	Lines      filter.Stats
	Statements []string
}

// Text returns the kept statements joined with newlines, without a trailing one.
func (r *Result) Text() string {
	return strings.Join(r.Statements, "\n")
}

// New creates a Converter.
func New(opts Options) *Converter {
	c := &Converter{
		rules:    opts.Rules,
		progress: opts.Progress,
		logger:   opts.Logger,
	}
	if c.rules == nil {
		c.rules = rewrite.Default()
	}
	if c.progress == nil {
		c.progress = os.Stdout
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// newlines maps CRLF and lone CR line endings to LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Convert rewrites src and filters it down to the allowed statements.
// Line endings are normalized to "\n" first.
func (c *Converter) Convert(src string) *Result {
	rewritten, hits := c.rules.Apply(newlines.Replace(src))
	for _, h := range hits {
		if h.Matches > 0 {
			c.logger.Debug("rule applied", "rule", h.Rule, "matches", h.Matches)
		}
	}

	kept, stats := filter.Lines(rewritten)
	c.logger.Debug("lines filtered",
		"total", stats.Total,
		"kept", stats.Kept,
		"dropped", stats.Dropped,
		"blank", stats.Blank,
		"comments", stats.Comments,
	)

	return &Result{
		Hits:       hits,
		Lines:      stats,
		Statements: kept,
	}
}

// ConvertFile converts the dump at inputPath and writes the script to
// outputPath, replacing any existing file. The input is read in full before
// the output is opened, so a missing input never truncates the output.
func (c *Converter) ConvertFile(inputPath, outputPath string) (*Result, error) {
	fmt.Fprintf(c.progress, "Converting %s to %s\n", inputPath, outputPath)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	c.logger.Debug("input read", "path", inputPath, "bytes", len(data))

	res := c.Convert(string(data))
	res.Input = inputPath
	res.Output = outputPath

	if err := os.WriteFile(outputPath, []byte(res.Text()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	c.logger.Debug("output written", "path", outputPath, "statements", len(res.Statements))

	fmt.Fprintf(c.progress, "✅ Conversion complete: %s\n", outputPath)
	return res, nil
}
