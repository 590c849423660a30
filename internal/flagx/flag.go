// Package flagx holds small helpers for layered command-line parsing: each
// configuration layer parses only the flags it owns, so unrelated flags do not
// make flag.FlagSet fail.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// configFlags are the spellings accepted for the JSON config path.
var configFlags = []string{"-c", "-config", "--config"}

// FilterArgs returns the subset of args that belong to allowedFlags, keeping
// each flag's value when it is given as a separate token.
//
// Both "-c conf.json" and "--config=conf.json" forms are recognised. A token
// following an allowed flag is treated as its value unless it starts with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the JSON config path given via -c or -config in
// os.Args, or "" when none is present. When repeated, the last one wins.
func JsonConfigFlags() string {
	return jsonConfigPath(os.Args[1:])
}

func jsonConfigPath(args []string) string {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var path string
	fs.StringVar(&path, "c", "", "path to JSON config file")
	fs.StringVar(&path, "config", "", "path to JSON config file")

	if err := fs.Parse(FilterArgs(args, configFlags)); err != nil {
		return ""
	}
	return path
}
