package rules

import "fmt"

// PasswordPolicy tracks the strictest password length requirement seen
// across merged directives.
type PasswordPolicy struct {
	minLen int
}

func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{}
}

// UpdateMinLen raises the required minimum length. A later, lower value
// is ignored; the requirement never decreases.
func (p *PasswordPolicy) UpdateMinLen(minLen int) {
	if minLen > p.minLen {
		p.minLen = minLen
	}
}

// MinLen returns the current required minimum length (0 means none).
func (p *PasswordPolicy) MinLen() int { return p.minLen }

// Evaluate is advisory only: the installer cannot enforce password length
// downstream, so the requirement is surfaced as a Warning and the plan is
// never touched.
func (p *PasswordPolicy) Evaluate(state SystemState, reportOnly bool) []Message {
	if p.minLen <= 0 {
		return nil
	}
	return []Message{{
		Severity: SeverityWarning,
		Text:     fmt.Sprintf("make sure to create password with minimal length of %d characters", p.minLen),
	}}
}

func (p *PasswordPolicy) String() string {
	if p.minLen <= 0 {
		return ""
	}
	return fmt.Sprintf("passwd --minlen=%d", p.minLen)
}
