package main

import (
	"os"
	"strings"

	"checklist-cli/internal/cli"
)

func rewriteShorthandAddArgs(argv []string) []string {
	// Convenience: `checklist +Buy milk` works like `checklist add Buy milk`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `checklist --dir ... +Buy milk`), so we look for
	// the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if !strings.HasPrefix(a, "+") {
			return argv
		}
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "add")
		if rest := strings.TrimPrefix(argv[i], "+"); rest != "" {
			out = append(out, rest)
		}
		out = append(out, argv[i+1:]...)
		return out
	}

	return argv
}

func main() {
	os.Args = rewriteShorthandAddArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cli.Execute(cmd); err != nil {
		os.Exit(1)
	}
}
