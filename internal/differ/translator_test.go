package differ

import (
	"strings"
	"testing"

	"github.com/wI2L/jsondiff"
)

func TestTranslateEmptyPatch(t *testing.T) {
	if got := Translate(nil); got != nil {
		t.Errorf("Translate(nil) = %v, want nil", got)
	}
}

func TestTranslateMountOptions(t *testing.T) {
	patch := jsondiff.Patch{
		{Type: jsondiff.OperationReplace, Path: "/storage/mountpoints/~1tmp/options", Value: "defaults,nodev"},
	}

	got := Translate(patch)
	if len(got) != 1 {
		t.Fatalf("got %d translations, want 1", len(got))
	}
	if !strings.Contains(got[0], "/tmp") {
		t.Errorf("translation %q does not name the mount point", got[0])
	}
	if !strings.Contains(got[0], "defaults,nodev") {
		t.Errorf("translation %q does not show the new options", got[0])
	}
}

func TestTranslatePackageAppend(t *testing.T) {
	patch := jsondiff.Patch{
		{Type: jsondiff.OperationAdd, Path: "/packages/install/-", Value: "aide"},
		{Type: jsondiff.OperationAdd, Path: "/packages/exclude/-", Value: "telnet-server"},
	}

	got := Translate(patch)
	if len(got) != 2 {
		t.Fatalf("got %d translations, want 2", len(got))
	}
	if !strings.Contains(got[0], "aide") || !strings.Contains(got[0], "install") {
		t.Errorf("got[0] = %q", got[0])
	}
	if !strings.Contains(got[1], "telnet-server") || !strings.Contains(got[1], "exclude") {
		t.Errorf("got[1] = %q", got[1])
	}
}

func TestTranslateWholeListReplacement(t *testing.T) {
	patch := jsondiff.Patch{
		{Type: jsondiff.OperationReplace, Path: "/packages/install", Value: []interface{}{"aide", "audit"}},
	}

	got := Translate(patch)
	if len(got) != 1 {
		t.Fatalf("got %d translations, want 1", len(got))
	}
	if !strings.Contains(got[0], "aide") || !strings.Contains(got[0], "audit") {
		t.Errorf("translation %q does not list the packages", got[0])
	}
}

func TestTranslateDeduplicates(t *testing.T) {
	patch := jsondiff.Patch{
		{Type: jsondiff.OperationAdd, Path: "/packages/install/-", Value: "aide"},
		{Type: jsondiff.OperationAdd, Path: "/packages/install/-", Value: "aide"},
	}

	if got := Translate(patch); len(got) != 1 {
		t.Errorf("got %d translations, want 1 (duplicates collapsed)", len(got))
	}
}

func TestMountPointFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/storage/mountpoints/~1tmp/options", "/tmp"},
		{"/storage/mountpoints/~1var~1log/options", "/var/log"},
		{"/storage/mountpoints/~0weird/options", "~weird"},
	}

	for _, tc := range cases {
		if got := mountPointFromPath(tc.path); got != tc.want {
			t.Errorf("mountPointFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
