package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"orgdir/internal/cli"
)

const queryPrefix = "?"

func isQuery(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, queryPrefix) && strings.TrimSpace(strings.TrimPrefix(s, queryPrefix)) != ""
}

func rewriteQueryArgs(argv []string) []string {
	// Convenience: `orgdir '?city hosp'` works like `orgdir suggest 'city hosp'`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
	// Persistent flags may come first, so look for the first positional token.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--config":  true,
		"--backend": true,
		"--format":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "suggest", strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(argv[i]), queryPrefix)))
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isQuery(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isQuery(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteQueryArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
