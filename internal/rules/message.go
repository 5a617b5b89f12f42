// Package rules implements the compliance directive language and the engine
// that reconciles accumulated directives with an installation plan.
package rules

// Severity classifies an evaluation message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityFatal
)

// String to lowercase
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Message is one classified outcome of evaluating a rule. Warning and Info
// messages are advisory; a Fatal message describes a condition the engine
// cannot fix automatically.
type Message struct {
	Severity Severity
	Text     string
}
