package rules

import "fmt"

// UnknownRuleError reports a directive whose keyword matches none of the
// four known rule kinds. Not recoverable locally; the caller decides
// whether to abort rule loading.
type UnknownRuleError struct {
	Keyword string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule: %q", e.Keyword)
}

// MalformedDirectiveError reports a directive that matched a known keyword
// but failed tokenization or option-grammar validation.
type MalformedDirectiveError struct {
	Kind Kind
	Line string
	Err  error
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("malformed %s directive %q: %v", e.Kind, e.Line, e.Err)
}

func (e *MalformedDirectiveError) Unwrap() error { return e.Err }
