// Package flagx lets several components parse their own flags out of one
// command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the allowed flags from args, in order, together with
// their values. Both "-f value" and "-f=value" forms are recognized; a
// following token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowed ...string) []string {
	keep := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		keep[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if keep[name] {
				out = append(out, arg)
			}
			continue
		}

		if !keep[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is given.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, "-c", "-config", "--config"))

	return path
}
