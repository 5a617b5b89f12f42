// Package profile reads directive sets produced by external security
// content tooling. The format is one directive per line; blank lines and
// '#' comments are skipped. Extracting directives from the security
// content itself happens upstream of this boundary.
package profile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hardenctl/hardenctl/internal/rules"
)

// Directive is one rule line with its source position for error reporting.
type Directive struct {
	Line int
	Text string
}

// Load reads directives from r, skipping blank lines and comments.
func Load(r io.Reader) ([]Directive, error) {
	var directives []Directive

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		directives = append(directives, Directive{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read directives: %w", err)
	}

	return directives, nil
}

// LoadFile reads directives from a rules file.
func LoadFile(path string) ([]Directive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Apply feeds directives into the rule set, annotating parse failures with
// their source line. It stops at the first failure; a malformed directive
// set is a configuration-authoring error, not something to apply half of.
func Apply(rs *rules.RuleSet, directives []Directive) error {
	for _, d := range directives {
		if err := rs.NewRule(d.Text); err != nil {
			return fmt.Errorf("line %d: %w", d.Line, err)
		}
	}
	return nil
}
