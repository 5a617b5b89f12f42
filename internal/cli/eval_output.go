package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hardenctl/hardenctl/internal/rules"
)

// FailOnLevel threshold for failure
type FailOnLevel string

const (
	FailOnFatal   FailOnLevel = "fatal"
	FailOnWarning FailOnLevel = "warning"
	FailOnInfo    FailOnLevel = "info"
)

// ParseFailOnLevel from string
func ParseFailOnLevel(s string) (FailOnLevel, error) {
	switch strings.ToLower(s) {
	case "fatal":
		return FailOnFatal, nil
	case "warning":
		return FailOnWarning, nil
	case "info":
		return FailOnInfo, nil
	default:
		return "", fmt.Errorf("invalid fail-on level: %s (use fatal, warning, or info)", s)
	}
}

// ShouldFail checks limits
func (f FailOnLevel) ShouldFail(severity rules.Severity) bool {
	switch f {
	case FailOnFatal:
		return severity == rules.SeverityFatal
	case FailOnWarning:
		return severity >= rules.SeverityWarning
	case FailOnInfo:
		return true // all severities fail
	default:
		return severity == rules.SeverityFatal
	}
}

// EvalResult output structure
type EvalResult struct {
	RulesPath string          `json:"rules"`
	StatePath string          `json:"state"`
	Applied   bool            `json:"applied"`
	Summary   EvalSummary     `json:"summary"`
	Messages  []MessageOutput `json:"messages"`
	Changes   []string        `json:"changes,omitempty"`
	FailOn    string          `json:"failOn"`
	Outcome   string          `json:"outcome"` // "PASS" or "FAIL"
}

// EvalSummary by severity
type EvalSummary struct {
	Fatal   int `json:"fatal"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
	Total   int `json:"total"`
	Failing int `json:"failing"`
}

// MessageOutput detail
type MessageOutput struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

// BuildEvalResult from components
func BuildEvalResult(
	rulesPath string,
	statePath string,
	applied bool,
	messages []rules.Message,
	changes []string,
	failOn FailOnLevel,
) *EvalResult {
	result := &EvalResult{
		RulesPath: rulesPath,
		StatePath: statePath,
		Applied:   applied,
		Messages:  make([]MessageOutput, 0, len(messages)),
		Changes:   changes,
		FailOn:    string(failOn),
		Outcome:   "PASS",
	}

	for _, msg := range messages {
		result.Messages = append(result.Messages, MessageOutput{
			Severity: msg.Severity.String(),
			Text:     msg.Text,
		})

		switch msg.Severity {
		case rules.SeverityFatal:
			result.Summary.Fatal++
		case rules.SeverityWarning:
			result.Summary.Warning++
		case rules.SeverityInfo:
			result.Summary.Info++
		}

		if failOn.ShouldFail(msg.Severity) {
			result.Summary.Failing++
			result.Outcome = "FAIL"
		}
	}
	result.Summary.Total = len(messages)

	return result
}

// RenderText for terminal
func (r *EvalResult) RenderText() string {
	var b strings.Builder

	for _, msg := range r.Messages {
		fmt.Fprintf(&b, "%-7s %s\n", strings.ToUpper(msg.Severity), msg.Text)
	}

	if len(r.Changes) > 0 {
		b.WriteString("\nPlanned changes:\n")
		for _, change := range r.Changes {
			fmt.Fprintf(&b, "  - %s\n", change)
		}
	}

	fmt.Fprintf(&b, "\n%d fatal, %d warning, %d info\n",
		r.Summary.Fatal, r.Summary.Warning, r.Summary.Info)
	fmt.Fprintf(&b, "Outcome: %s (fail-on=%s)\n", r.Outcome, r.FailOn)

	return b.String()
}

// RenderJSON for CI
func (r *EvalResult) RenderJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}
