// Package flagx lets several components read their own flags from os.Args
// without tripping over flags they do not define.
package flagx

import (
	"flag"
	"io"
	"os"
	"slices"
	"strings"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-c value" and "-c=value" forms are recognised; a token that
// starts with "-" is never taken as a value. The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, hasValue := strings.Cut(arg, "="); hasValue && strings.HasPrefix(arg, "-") {
			if slices.Contains(allowed, name) {
				out = append(out, arg)
			}
			continue
		}

		if !slices.Contains(allowed, arg) {
			continue
		}
		out = append(out, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			out = append(out, args[next])
			i = next
		}
	}

	return out
}

// ConfigFileFlag returns the config file path given with -c or -config,
// or "" when neither is present. The last occurrence wins.
func ConfigFileFlag() string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config"}))

	return path
}
