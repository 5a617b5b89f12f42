package rules

import (
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// PartitionRules accumulates partition directives keyed by mount point,
// preserving first-reference order. Mount points are inserted lazily and
// never removed.
type PartitionRules struct {
	order []string
	rules map[string]*PartitionRule
}

func NewPartitionRules() *PartitionRules {
	return &PartitionRules{rules: make(map[string]*PartitionRule)}
}

// EnsureMountPoint inserts an empty rule for the mount point if absent and
// returns the rule either way. Idempotent.
func (p *PartitionRules) EnsureMountPoint(path string) *PartitionRule {
	if rule, ok := p.rules[path]; ok {
		return rule
	}
	rule := &PartitionRule{mountPoint: path}
	p.rules[path] = rule
	p.order = append(p.order, path)
	return rule
}

// MountPoint looks up the rule for a mount point.
func (p *PartitionRules) MountPoint(path string) (*PartitionRule, bool) {
	rule, ok := p.rules[path]
	return rule, ok
}

// MountPoints returns the tracked mount points in first-reference order.
func (p *PartitionRules) MountPoints() []string {
	return append([]string(nil), p.order...)
}

func (p *PartitionRules) Evaluate(state SystemState, reportOnly bool) []Message {
	var messages []Message
	for _, path := range p.order {
		messages = append(messages, p.rules[path].Evaluate(state, reportOnly)...)
	}
	return messages
}

func (p *PartitionRules) String() string {
	var lines []string
	for _, path := range p.order {
		lines = append(lines, p.rules[path].String())
	}
	return strings.Join(lines, "\n")
}

// PartitionRule holds the requirements for a single mount point.
type PartitionRule struct {
	mountPoint   string
	mountOptions []string
}

// MountOptions returns the required options in declaration order.
func (p *PartitionRule) MountOptions() []string {
	return append([]string(nil), p.mountOptions...)
}

// AddMountOptions appends options not already present, preserving
// first-seen order. Duplicate additions are no-ops.
func (p *PartitionRule) AddMountOptions(opts []string) {
	for _, opt := range opts {
		if !containsString(p.mountOptions, opt) {
			p.mountOptions = append(p.mountOptions, opt)
		}
	}
}

// Evaluate checks the mount point against the planned storage layout. A
// mount point missing from the plan is Fatal and ends the checks for this
// rule. Otherwise each required option missing from the planned spec gets
// an Info message, and in apply mode the missing options are appended.
func (p *PartitionRule) Evaluate(state SystemState, reportOnly bool) []Message {
	spec, ok := state.MountPoint(p.mountPoint)
	if !ok {
		return []Message{{
			Severity: SeverityFatal,
			Text:     fmt.Sprintf("%s must be on a separate partition or logical volume", p.mountPoint),
		}}
	}

	current := spec.Options()

	var missing []string
	var messages []Message
	for _, opt := range p.mountOptions {
		if containsString(current, opt) {
			continue
		}
		missing = append(missing, opt)
		messages = append(messages, Message{
			Severity: SeverityInfo,
			Text:     fmt.Sprintf("mount option '%s' added for the mount point %s", opt, p.mountPoint),
		})
	}

	if !reportOnly && len(missing) > 0 {
		spec.AddOptions(missing)
	}

	return messages
}

func (p *PartitionRule) String() string {
	words := []string{"part", p.mountPoint}
	if len(p.mountOptions) > 0 {
		words = append(words, "--mountoptions="+strings.Join(p.mountOptions, ","))
	}
	return shellquote.Join(words...)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
