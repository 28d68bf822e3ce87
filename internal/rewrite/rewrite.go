// Package rewrite holds the ordered table of regular-expression substitutions
// that approximate PostgreSQL to SQLite syntax translation. Rules are applied
// one after another over the whole dump, so their order is part of the
// behavior: comment stripping has to run before type substitution, and
// "SERIAL PRIMARY KEY" has to run before the bare "SERIAL" rule.
//
// The built-in table lives in rules.toml and is decoded at first use.
package rewrite

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed rules.toml
var defaultRules string

// ruleFile is the top-level TOML document of a rule table.
type ruleFile struct {
	Rules []tomlRule `toml:"rules"`
}

// tomlRule maps one [[rules]] entry.
type tomlRule struct {
	Name        string `toml:"name"`
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// Rule is a single (pattern, replacement) pair.
// Replacement is a regexp template: ${1} refers to the first capture group.
type Rule struct {
	Name        string
	Pattern     string
	Replacement string

	re *regexp.Regexp
}

// Hit reports how many matches a rule replaced during one Apply call.
type Hit struct {
	Rule    string `json:"rule"`
	Matches int    `json:"matches"`
}

// RuleSet is an ordered, compiled list of rules. It is safe for concurrent use.
type RuleSet struct {
	rules []Rule
}

var (
	defaultOnce sync.Once
	defaultSet  *RuleSet
)

// Default returns the built-in PostgreSQL -> SQLite rule table.
func Default() *RuleSet {
	defaultOnce.Do(func() {
		rs, err := Load(strings.NewReader(defaultRules))
		if err != nil {
			panic(fmt.Sprintf("rewrite: built-in rules: %v", err))
		}
		defaultSet = rs
	})
	return defaultSet
}

// LoadFile opens the file at the given path and decodes it as a rule table.
func LoadFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rewrite: open file %q: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a TOML rule table from r. Rules keep the order of the document.
func Load(r io.Reader) (*RuleSet, error) {
	var rf ruleFile
	if _, err := toml.NewDecoder(r).Decode(&rf); err != nil {
		return nil, fmt.Errorf("rewrite: decode error: %w", err)
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for _, tr := range rf.Rules {
		rules = append(rules, Rule{
			Name:        tr.Name,
			Pattern:     tr.Pattern,
			Replacement: tr.Replacement,
		})
	}
	return New(rules)
}

// New compiles rules into a RuleSet. Every pattern is compiled
// case-insensitive and multi-line; "." never crosses a newline.
func New(rules []Rule) (*RuleSet, error) {
	compiled := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if strings.TrimSpace(r.Name) == "" {
			r.Name = fmt.Sprintf("rule-%d", i+1)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rewrite: rule %q: empty pattern", r.Name)
		}
		re, err := regexp.Compile("(?im)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rewrite: rule %q: %w", r.Name, err)
		}
		r.re = re
		compiled = append(compiled, r)
	}
	return &RuleSet{rules: compiled}, nil
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Apply runs every rule, in order, as a global replace over content.
func (s *RuleSet) Apply(content string) (string, []Hit) {
	hits := make([]Hit, 0, len(s.rules))
	for _, r := range s.rules {
		n := len(r.re.FindAllStringIndex(content, -1))
		hits = append(hits, Hit{Rule: r.Name, Matches: n})
		if n == 0 {
			continue
		}
		content = r.re.ReplaceAllString(content, r.Replacement)
	}
	return content, hits
}
