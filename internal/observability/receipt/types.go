// Package receipt provides stable evidence artifacts for audit/compliance.
package receipt

// ReceiptSchemaVersion current
const ReceiptSchemaVersion = "1.0"

// Receipt records one CLI invocation end to end.
type Receipt struct {
	SchemaVersion string       `json:"schema_version"`
	OpID          string       `json:"op_id"`
	TsStart       string       `json:"ts_start"`
	TsEnd         string       `json:"ts_end"`
	Command       string       `json:"command"`
	Args          []string     `json:"args"`
	Result        Result       `json:"result"`
	Rules         *RulesRef    `json:"rules,omitempty"`
	Evaluation    *EvalSummary `json:"evaluation,omitempty"`
}

// Result status
type Result struct {
	Status string `json:"status"` // "success" or "fail"
	Error  string `json:"error,omitempty"`
}

// RulesRef pins the directive set that was evaluated.
type RulesRef struct {
	Path       string `json:"path"`
	SHA256     string `json:"sha256,omitempty"`
	Directives int    `json:"directives,omitempty"`
}

// EvalSummary counts messages by severity for one evaluation run.
type EvalSummary struct {
	Fatal   int    `json:"fatal"`
	Warning int    `json:"warning"`
	Info    int    `json:"info"`
	Outcome string `json:"outcome"` // "PASS" or "FAIL"
	Applied bool   `json:"applied"` // true when fixes were written back
}
