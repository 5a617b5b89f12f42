package differ

import (
	"fmt"
	"strings"

	"github.com/wI2L/jsondiff"
)

// Translate patches to english
func Translate(patch jsondiff.Patch) []string {
	if len(patch) == 0 {
		return nil
	}

	var translations []string
	seen := make(map[string]bool)

	for _, op := range patch {
		translation := translateOperation(op)
		if translation != "" && !seen[translation] {
			seen[translation] = true
			translations = append(translations, translation)
		}
	}

	return translations
}

func translateOperation(op jsondiff.Operation) string {
	path := op.Path

	switch {
	case strings.HasPrefix(path, "/storage/mountpoints/") && strings.HasSuffix(path, "/options"):
		return fmt.Sprintf("mount options for %s become %q", mountPointFromPath(path), op.Value)

	case strings.HasPrefix(path, "/packages/install"):
		return packageChange(op, "install")

	case strings.HasPrefix(path, "/packages/exclude"):
		return packageChange(op, "exclude")

	default:
		return fmt.Sprintf("%s at %s", op.Type, path)
	}
}

// packageChange handles both single-element appends and whole-list
// replacements (the patch shape when the list was previously empty).
func packageChange(op jsondiff.Operation, list string) string {
	switch v := op.Value.(type) {
	case string:
		return fmt.Sprintf("package '%s' appended to the %s list", v, list)
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, item := range v {
			names = append(names, fmt.Sprintf("%v", item))
		}
		return fmt.Sprintf("%s list becomes [%s]", list, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s list changed", list)
	}
}

// mountPointFromPath recovers the mount-point map key from a JSON pointer,
// undoing RFC 6901 escaping ("/" is stored as "~1").
func mountPointFromPath(path string) string {
	token := strings.TrimPrefix(path, "/storage/mountpoints/")
	token = strings.TrimSuffix(token, "/options")
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
