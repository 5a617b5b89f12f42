package rules

import (
	"fmt"
	"sort"

	shellquote "github.com/kballard/go-shellquote"
)

// PackageRules tracks packages required to be installed or excluded. Both
// are sets; a package may legitimately appear in both (no cross-set
// exclusivity is enforced here).
type PackageRules struct {
	install map[string]struct{}
	exclude map[string]struct{}
}

func NewPackageRules() *PackageRules {
	return &PackageRules{
		install: make(map[string]struct{}),
		exclude: make(map[string]struct{}),
	}
}

// AddPackages unions names into the to-install set.
func (p *PackageRules) AddPackages(names []string) {
	for _, name := range names {
		p.install[name] = struct{}{}
	}
}

// RemovePackages unions names into the to-exclude set.
func (p *PackageRules) RemovePackages(names []string) {
	for _, name := range names {
		p.exclude[name] = struct{}{}
	}
}

// InstallList returns the to-install set, sorted.
func (p *PackageRules) InstallList() []string { return sortedKeys(p.install) }

// ExcludeList returns the to-exclude set, sorted.
func (p *PackageRules) ExcludeList() []string { return sortedKeys(p.exclude) }

// Evaluate walks both sets in lexicographic order so output is stable
// across runs. A package already present in the target list produces no
// message; an absent one gets an Info message and, in apply mode, is
// appended to the plan.
func (p *PackageRules) Evaluate(state SystemState, reportOnly bool) []Message {
	var messages []Message

	for _, pkg := range sortedKeys(p.install) {
		if state.Installing(pkg) {
			continue
		}
		if !reportOnly {
			state.AddInstall(pkg)
		}
		messages = append(messages, Message{
			Severity: SeverityInfo,
			Text:     fmt.Sprintf("package '%s' has been added to the list of to be installed packages", pkg),
		})
	}

	for _, pkg := range sortedKeys(p.exclude) {
		if state.Excluding(pkg) {
			continue
		}
		if !reportOnly {
			state.AddExclude(pkg)
		}
		messages = append(messages, Message{
			Severity: SeverityInfo,
			Text:     fmt.Sprintf("package '%s' has been added to the list of excluded packages", pkg),
		})
	}

	return messages
}

func (p *PackageRules) String() string {
	if len(p.install) == 0 && len(p.exclude) == 0 {
		return ""
	}

	words := []string{"package"}
	for _, pkg := range sortedKeys(p.install) {
		words = append(words, "--add="+pkg)
	}
	for _, pkg := range sortedKeys(p.exclude) {
		words = append(words, "--remove="+pkg)
	}
	return shellquote.Join(words...)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
