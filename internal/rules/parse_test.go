package rules

import (
	"errors"
	"reflect"
	"testing"
)

func TestKindForKeyword(t *testing.T) {
	cases := []struct {
		keyword string
		want    Kind
	}{
		{"part", KindPartition},
		{"passwd", KindPassword},
		{"package", KindPackage},
		{"bootloader", KindBootloader},
	}

	for _, tc := range cases {
		got, err := KindForKeyword(tc.keyword)
		if err != nil {
			t.Fatalf("KindForKeyword(%q) returned error: %v", tc.keyword, err)
		}
		if got != tc.want {
			t.Errorf("KindForKeyword(%q) = %q, want %q", tc.keyword, got, tc.want)
		}
	}
}

func TestKindForKeywordUnknown(t *testing.T) {
	_, err := KindForKeyword("firewall")
	if err == nil {
		t.Fatal("expected error for unknown keyword")
	}

	var unknownErr *UnknownRuleError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownRuleError, got %T", err)
	}
	if unknownErr.Keyword != "firewall" {
		t.Errorf("Keyword = %q, want %q", unknownErr.Keyword, "firewall")
	}
}

func TestParsePart(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		wantMP   string
		wantOpts []string
	}{
		{
			name:   "mount point only",
			line:   "part /tmp",
			wantMP: "/tmp",
		},
		{
			name:     "with mount options",
			line:     "part /tmp --mountoptions=nodev,nosuid",
			wantMP:   "/tmp",
			wantOpts: []string{"nodev", "nosuid"},
		},
		{
			name:     "empty csv items dropped",
			line:     "part /var/log --mountoptions=,nodev,,noexec,",
			wantMP:   "/var/log",
			wantOpts: []string{"nodev", "noexec"},
		},
		{
			name:     "quoted mount point with space",
			line:     `part "/mnt/app data" --mountoptions=nodev`,
			wantMP:   "/mnt/app data",
			wantOpts: []string{"nodev"},
		},
		{
			name:     "flag before positional",
			line:     "part --mountoptions=nosuid /home",
			wantMP:   "/home",
			wantOpts: []string{"nosuid"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := parsePart(tc.line)
			if err != nil {
				t.Fatalf("parsePart(%q) returned error: %v", tc.line, err)
			}
			if opts.mountPoint != tc.wantMP {
				t.Errorf("mountPoint = %q, want %q", opts.mountPoint, tc.wantMP)
			}
			if !reflect.DeepEqual(opts.mountOptions, tc.wantOpts) {
				t.Errorf("mountOptions = %v, want %v", opts.mountOptions, tc.wantOpts)
			}
		})
	}
}

func TestParsePartMalformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"missing mount point", "part"},
		{"missing mount point with flag", "part --mountoptions=nodev"},
		{"unknown flag", "part /tmp --fstype=xfs"},
		{"unbalanced quote", `part /tmp --mountoptions="nodev`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parsePart(tc.line)
			if err == nil {
				t.Fatalf("parsePart(%q) succeeded, want error", tc.line)
			}
			var malformed *MalformedDirectiveError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedDirectiveError, got %T", err)
			}
			if malformed.Kind != KindPartition {
				t.Errorf("Kind = %q, want %q", malformed.Kind, KindPartition)
			}
		})
	}
}

func TestParsePasswd(t *testing.T) {
	opts, err := parsePasswd("passwd --minlen=8")
	if err != nil {
		t.Fatalf("parsePasswd returned error: %v", err)
	}
	if opts.minLen != 8 {
		t.Errorf("minLen = %d, want 8", opts.minLen)
	}

	// default when the flag is absent
	opts, err = parsePasswd("passwd")
	if err != nil {
		t.Fatalf("parsePasswd returned error: %v", err)
	}
	if opts.minLen != 0 {
		t.Errorf("minLen = %d, want 0", opts.minLen)
	}
}

func TestParsePasswdMalformed(t *testing.T) {
	for _, line := range []string{
		"passwd --minlen=eight",
		"passwd --maxlen=8",
	} {
		_, err := parsePasswd(line)
		if err == nil {
			t.Fatalf("parsePasswd(%q) succeeded, want error", line)
		}
		var malformed *MalformedDirectiveError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedDirectiveError, got %T", err)
		}
	}
}

func TestParsePackage(t *testing.T) {
	opts, err := parsePackage("package --add=aide --add=audit --remove=telnet-server")
	if err != nil {
		t.Fatalf("parsePackage returned error: %v", err)
	}
	if !reflect.DeepEqual(opts.add, []string{"aide", "audit"}) {
		t.Errorf("add = %v, want [aide audit]", opts.add)
	}
	if !reflect.DeepEqual(opts.remove, []string{"telnet-server"}) {
		t.Errorf("remove = %v, want [telnet-server]", opts.remove)
	}
}

func TestParsePackageEmpty(t *testing.T) {
	opts, err := parsePackage("package")
	if err != nil {
		t.Fatalf("parsePackage returned error: %v", err)
	}
	if len(opts.add) != 0 || len(opts.remove) != 0 {
		t.Errorf("expected empty option lists, got add=%v remove=%v", opts.add, opts.remove)
	}
}

func TestParseBootloader(t *testing.T) {
	opts, err := parseBootloader("bootloader --passwd")
	if err != nil {
		t.Fatalf("parseBootloader returned error: %v", err)
	}
	if !opts.passwd {
		t.Error("passwd = false, want true")
	}

	opts, err = parseBootloader("bootloader")
	if err != nil {
		t.Fatalf("parseBootloader returned error: %v", err)
	}
	if opts.passwd {
		t.Error("passwd = true, want false")
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"nodev", []string{"nodev"}},
		{"nodev,nosuid", []string{"nodev", "nosuid"}},
		{",nodev,,nosuid,", []string{"nodev", "nosuid"}},
	}

	for _, tc := range cases {
		if got := splitCSV(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitCSV(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
