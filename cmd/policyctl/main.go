// Command policyctl inspects a licence policy catalogue: it lints policy
// documents, renders conditions, checks readiness and diffs licences
// against newer policy versions.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/observability"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// stdin is a variable to allow substitution in tests.
var stdin io.Reader = os.Stdin

// Run is the entrypoint for testing.
//
// Exit codes:
//
//	0 = success
//	1 = check failed (lint errors, conditions not ready)
//	2 = usage or runtime error
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	cfg := config.Load()
	slog.SetDefault(observability.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := newEnv(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer env.close(ctx)

	switch args[1] {
	case "lint":
		return runLintCmd(ctx, env, args[2:], stdout, stderr)
	case "versions":
		return runVersionsCmd(ctx, env, args[2:], stdout, stderr)
	case "render":
		return runRenderCmd(ctx, env, args[2:], stdout, stderr)
	case "ready":
		return runReadyCmd(ctx, env, args[2:], stdout, stderr)
	case "diff":
		return runDiffCmd(ctx, env, args[2:], stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "USAGE:")
	_, _ = fmt.Fprintln(w, "  policyctl <command> [flags]")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "COMMANDS:")
	printCommand(w, "lint", "Validate and lint every policy document (--dir, --json)")
	printCommand(w, "versions", "List policy versions and fingerprints (--dir, --json)")
	printCommand(w, "render", "Render one condition (--kind, --version, --code, --values)")
	printCommand(w, "ready", "Check condition readiness for a licence (--input)")
	printCommand(w, "diff", "Diff a licence against a policy version (--licence, --target)")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "The catalogue is read from CATALOGUE_SOURCE_TYPE (fs, s3, gcs) unless --dir is given.")
}

func printCommand(w io.Writer, name, desc string) {
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", name, desc)
}
