package rules

import (
	"strings"
	"unicode"
)

// RuleSet accumulates parsed directives across all four rule kinds and
// evaluates them against an installation plan. Created empty; populated
// incrementally via NewRule; lives for one installation session.
type RuleSet struct {
	partitions *PartitionRules
	password   *PasswordPolicy
	packages   *PackageRules
	bootloader *BootloaderPolicy
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		partitions: NewPartitionRules(),
		password:   NewPasswordPolicy(),
		packages:   NewPackageRules(),
		bootloader: NewBootloaderPolicy(),
	}
}

// NewRule parses one directive line and merges it into the matching
// collection. Empty and whitespace-only lines are no-ops. Returns
// UnknownRuleError or MalformedDirectiveError on bad input; the rule set
// is unchanged in that case.
func (r *RuleSet) NewRule(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	keyword := line
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		keyword = line[:i]
	}

	kind, err := KindForKeyword(keyword)
	if err != nil {
		return err
	}

	switch kind {
	case KindPartition:
		opts, err := parsePart(line)
		if err != nil {
			return err
		}
		part := r.partitions.EnsureMountPoint(opts.mountPoint)
		part.AddMountOptions(opts.mountOptions)

	case KindPassword:
		opts, err := parsePasswd(line)
		if err != nil {
			return err
		}
		r.password.UpdateMinLen(opts.minLen)

	case KindPackage:
		opts, err := parsePackage(line)
		if err != nil {
			return err
		}
		r.packages.AddPackages(opts.add)
		r.packages.RemovePackages(opts.remove)

	case KindBootloader:
		opts, err := parseBootloader(line)
		if err != nil {
			return err
		}
		if opts.passwd {
			r.bootloader.RequirePassword()
		}
	}

	return nil
}

// Evaluate runs every collection in a fixed order (partition, password,
// package, bootloader) and concatenates their messages. A Fatal message
// from one collection does not stop the others; they are independent.
// With reportOnly, the plan is only inspected, never mutated. Every
// mutation path re-checks presence first, so repeated evaluation is safe.
func (r *RuleSet) Evaluate(state SystemState, reportOnly bool) []Message {
	var messages []Message
	messages = append(messages, r.partitions.Evaluate(state, reportOnly)...)
	messages = append(messages, r.password.Evaluate(state, reportOnly)...)
	messages = append(messages, r.packages.Evaluate(state, reportOnly)...)
	messages = append(messages, r.bootloader.Evaluate(state, reportOnly)...)
	return messages
}

// Partitions accessor
func (r *RuleSet) Partitions() *PartitionRules { return r.partitions }

// Password accessor
func (r *RuleSet) Password() *PasswordPolicy { return r.password }

// Packages accessor
func (r *RuleSet) Packages() *PackageRules { return r.packages }

// Bootloader accessor
func (r *RuleSet) Bootloader() *BootloaderPolicy { return r.bootloader }

// String renders the accumulated rules as canonical directive lines, one
// per non-empty collection (partition rules get one line per mount point).
// The output parses back into an equivalent rule set.
func (r *RuleSet) String() string {
	var lines []string
	for _, collection := range []interface{ String() string }{
		r.partitions, r.password, r.packages, r.bootloader,
	} {
		if s := collection.String(); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}
