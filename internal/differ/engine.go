// Package differ previews the plan mutations apply mode would perform.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/hardenctl/hardenctl/internal/state"
	"github.com/wI2L/jsondiff"
)

// Result contains the complete preview
type Result struct {
	HasChanges   bool
	Patch        jsondiff.Patch // Raw JSON patch between the two snapshots
	Translations []string       // Human-readable translations
}

// Preview compares a plan snapshot against the snapshot an apply-mode
// evaluation would leave behind.
func Preview(before, after *state.Snapshot) (*Result, error) {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal original snapshot: %w", err)
	}

	afterJSON, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mutated snapshot: %w", err)
	}

	patch, err := jsondiff.CompareJSON(beforeJSON, afterJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to compute snapshot diff: %w", err)
	}

	return &Result{
		HasChanges:   len(patch) > 0,
		Patch:        patch,
		Translations: Translate(patch),
	}, nil
}
