// Package filter keeps the statement lines of a rewritten dump that are
// portable to SQLite and drops everything else.
package filter

import "strings"

// allowedPrefixes are the statement keywords a line must start with to be
// kept. The check is case-insensitive; the kept text is not.
var allowedPrefixes = []string{"CREATE TABLE", "INSERT INTO", "CREATE INDEX"}

// Stats counts what happened to each line of the input.
type Stats struct {
	Total    int `json:"total"`
	Blank    int `json:"blank"`
	Comments int `json:"comments"`
	Dropped  int `json:"dropped"`
	Kept     int `json:"kept"`
}

// Keep trims line and reports whether it is an allowed statement line.
func Keep(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || isComment(line) {
		return line, false
	}
	return line, isAllowed(line)
}

// Lines splits content on newlines and returns the kept lines in order.
func Lines(content string) ([]string, Stats) {
	var (
		kept  []string
		stats Stats
	)
	for _, raw := range strings.Split(content, "\n") {
		stats.Total++
		line, ok := Keep(raw)
		switch {
		case ok:
			stats.Kept++
			kept = append(kept, line)
		case line == "":
			stats.Blank++
		case isComment(line):
			stats.Comments++
		default:
			stats.Dropped++
		}
	}
	return kept, stats
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "--")
}

func isAllowed(line string) bool {
	upper := strings.ToUpper(line)
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
