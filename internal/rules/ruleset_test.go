package rules

import (
	"errors"
	"testing"
)

// fakeMountSpec and fakePlan give the engine a minimal SystemState for
// tests without pulling in the snapshot package.
type fakeMountSpec struct {
	opts []string
}

func (f *fakeMountSpec) Options() []string { return f.opts }

func (f *fakeMountSpec) AddOptions(opts []string) {
	f.opts = append(f.opts, opts...)
}

type fakePlan struct {
	mounts  map[string]*fakeMountSpec
	install []string
	exclude []string
}

func newFakePlan() *fakePlan {
	return &fakePlan{mounts: make(map[string]*fakeMountSpec)}
}

func (f *fakePlan) addMount(path string, opts ...string) *fakeMountSpec {
	spec := &fakeMountSpec{opts: opts}
	f.mounts[path] = spec
	return spec
}

func (f *fakePlan) MountPoint(path string) (MountSpec, bool) {
	spec, ok := f.mounts[path]
	if !ok {
		return nil, false
	}
	return spec, true
}

func (f *fakePlan) Installing(name string) bool { return containsString(f.install, name) }
func (f *fakePlan) Excluding(name string) bool  { return containsString(f.exclude, name) }
func (f *fakePlan) AddInstall(name string)      { f.install = append(f.install, name) }
func (f *fakePlan) AddExclude(name string)      { f.exclude = append(f.exclude, name) }

func TestNewRuleDispatch(t *testing.T) {
	rs := NewRuleSet()
	lines := []string{
		"part /tmp --mountoptions=nodev,nosuid",
		"passwd --minlen=10",
		"package --add=aide --remove=telnet-server",
		"bootloader --passwd",
	}
	for _, line := range lines {
		if err := rs.NewRule(line); err != nil {
			t.Fatalf("NewRule(%q) returned error: %v", line, err)
		}
	}

	rule, ok := rs.Partitions().MountPoint("/tmp")
	if !ok {
		t.Fatal("/tmp rule not recorded")
	}
	if got := rule.MountOptions(); len(got) != 2 {
		t.Errorf("mount options = %v, want 2 entries", got)
	}
	if rs.Password().MinLen() != 10 {
		t.Errorf("MinLen = %d, want 10", rs.Password().MinLen())
	}
	if got := rs.Packages().InstallList(); len(got) != 1 || got[0] != "aide" {
		t.Errorf("InstallList = %v, want [aide]", got)
	}
	if got := rs.Packages().ExcludeList(); len(got) != 1 || got[0] != "telnet-server" {
		t.Errorf("ExcludeList = %v, want [telnet-server]", got)
	}
	if !rs.Bootloader().PasswordRequired() {
		t.Error("bootloader password not latched")
	}
}

func TestNewRuleUnknownKeyword(t *testing.T) {
	rs := NewRuleSet()
	err := rs.NewRule("foo --bar")
	if err == nil {
		t.Fatal("expected error for unknown keyword")
	}
	var unknownErr *UnknownRuleError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownRuleError, got %T", err)
	}
}

func TestNewRuleBlankLines(t *testing.T) {
	rs := NewRuleSet()
	for _, line := range []string{"", "   ", "\t", "  \n"} {
		if err := rs.NewRule(line); err != nil {
			t.Fatalf("NewRule(%q) returned error: %v", line, err)
		}
	}
	if got := rs.String(); got != "" {
		t.Errorf("String() = %q after blank lines, want empty", got)
	}
}

func TestNewRuleMalformedLeavesSetUnchanged(t *testing.T) {
	rs := NewRuleSet()
	if err := rs.NewRule("passwd --minlen=nope"); err == nil {
		t.Fatal("expected parse error")
	}
	if rs.Password().MinLen() != 0 {
		t.Errorf("MinLen = %d after failed parse, want 0", rs.Password().MinLen())
	}
}

func TestStringRoundTrip(t *testing.T) {
	rs := NewRuleSet()
	lines := []string{
		"part /tmp --mountoptions=nodev,nosuid",
		"part /home",
		"passwd --minlen=12",
		"package --add=audit --add=aide --remove=telnet-server",
		"bootloader --passwd",
	}
	for _, line := range lines {
		if err := rs.NewRule(line); err != nil {
			t.Fatalf("NewRule(%q) returned error: %v", line, err)
		}
	}

	rendered := rs.String()

	reparsed := NewRuleSet()
	for _, line := range splitLines(rendered) {
		if err := reparsed.NewRule(line); err != nil {
			t.Fatalf("re-parsing rendered line %q failed: %v", line, err)
		}
	}

	if got := reparsed.String(); got != rendered {
		t.Errorf("round trip mismatch:\nfirst:  %q\nsecond: %q", rendered, got)
	}
}

func TestEvaluateFixedOrder(t *testing.T) {
	rs := NewRuleSet()
	for _, line := range []string{
		"package --add=aide",
		"passwd --minlen=8",
		"part /opt --mountoptions=noexec",
	} {
		if err := rs.NewRule(line); err != nil {
			t.Fatalf("NewRule(%q) returned error: %v", line, err)
		}
	}

	// /opt is not planned: the fatal partition message must come first,
	// then the password warning, then the package info, regardless of the
	// order the directives arrived in.
	plan := newFakePlan()
	messages := rs.Evaluate(plan, true)

	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	wantSeverities := []Severity{SeverityFatal, SeverityWarning, SeverityInfo}
	for i, want := range wantSeverities {
		if messages[i].Severity != want {
			t.Errorf("messages[%d].Severity = %v, want %v", i, messages[i].Severity, want)
		}
	}
}

func TestEvaluateDoesNotShortCircuitOnFatal(t *testing.T) {
	rs := NewRuleSet()
	for _, line := range []string{
		"part /nonexistent",
		"package --add=aide",
	} {
		if err := rs.NewRule(line); err != nil {
			t.Fatalf("NewRule(%q) returned error: %v", line, err)
		}
	}

	plan := newFakePlan()
	messages := rs.Evaluate(plan, false)

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2 (fatal must not stop package rules)", len(messages))
	}
	if !containsString(plan.install, "aide") {
		t.Error("package fix not applied after a fatal partition message")
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
