package rules

import (
	"errors"
	"io"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"
)

// Kind is the closed set of directive kinds.
type Kind string

const (
	KindPartition  Kind = "part"
	KindPassword   Kind = "passwd"
	KindPackage    Kind = "package"
	KindBootloader Kind = "bootloader"
)

// KindForKeyword classifies the leading keyword of a directive line.
// An unknown keyword is a classification failure, not a lookup miss.
func KindForKeyword(word string) (Kind, error) {
	switch word {
	case "part":
		return KindPartition, nil
	case "passwd":
		return KindPassword, nil
	case "package":
		return KindPackage, nil
	case "bootloader":
		return KindBootloader, nil
	default:
		return "", &UnknownRuleError{Keyword: word}
	}
}

type partOptions struct {
	mountPoint   string
	mountOptions []string
}

type passwdOptions struct {
	minLen int
}

type packageOptions struct {
	add    []string
	remove []string
}

type bootloaderOptions struct {
	passwd bool
}

// tokenize splits a full directive line per POSIX shell quoting rules and
// drops the leading keyword token.
func tokenize(kind Kind, line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, &MalformedDirectiveError{Kind: kind, Line: line, Err: err}
	}
	if len(words) == 0 {
		return nil, nil
	}
	return words[1:], nil
}

// newFlagSet builds a quiet flag set; errors are returned, never printed.
func newFlagSet(kind Kind) *pflag.FlagSet {
	fs := pflag.NewFlagSet(string(kind), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

func parsePart(line string) (partOptions, error) {
	var out partOptions

	args, err := tokenize(KindPartition, line)
	if err != nil {
		return out, err
	}

	fs := newFlagSet(KindPartition)
	csv := fs.String("mountoptions", "", "")
	if err := fs.Parse(args); err != nil {
		return out, &MalformedDirectiveError{Kind: KindPartition, Line: line, Err: err}
	}

	if fs.NArg() == 0 {
		return out, &MalformedDirectiveError{Kind: KindPartition, Line: line,
			Err: errors.New("missing mount point")}
	}

	out.mountPoint = fs.Arg(0)
	out.mountOptions = splitCSV(*csv)
	return out, nil
}

func parsePasswd(line string) (passwdOptions, error) {
	var out passwdOptions

	args, err := tokenize(KindPassword, line)
	if err != nil {
		return out, err
	}

	fs := newFlagSet(KindPassword)
	minLen := fs.Int("minlen", 0, "")
	if err := fs.Parse(args); err != nil {
		return out, &MalformedDirectiveError{Kind: KindPassword, Line: line, Err: err}
	}

	out.minLen = *minLen
	return out, nil
}

func parsePackage(line string) (packageOptions, error) {
	var out packageOptions

	args, err := tokenize(KindPackage, line)
	if err != nil {
		return out, err
	}

	fs := newFlagSet(KindPackage)
	add := fs.StringArray("add", nil, "")
	remove := fs.StringArray("remove", nil, "")
	if err := fs.Parse(args); err != nil {
		return out, &MalformedDirectiveError{Kind: KindPackage, Line: line, Err: err}
	}

	out.add = *add
	out.remove = *remove
	return out, nil
}

func parseBootloader(line string) (bootloaderOptions, error) {
	var out bootloaderOptions

	args, err := tokenize(KindBootloader, line)
	if err != nil {
		return out, err
	}

	fs := newFlagSet(KindBootloader)
	passwd := fs.Bool("passwd", false, "")
	if err := fs.Parse(args); err != nil {
		return out, &MalformedDirectiveError{Kind: KindBootloader, Line: line, Err: err}
	}

	out.passwd = *passwd
	return out, nil
}

// splitCSV splits a comma-separated list, dropping empty items.
func splitCSV(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
