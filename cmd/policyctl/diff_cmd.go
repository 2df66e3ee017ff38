package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policydiff"
)

// runDiffCmd implements `policyctl diff`.
//
// The licence is a JSON object with kind, version and the ap/pss condition
// lists. The result is always a JSON array, empty when nothing changed.
func runDiffCmd(ctx context.Context, e *env, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("diff", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	dir := dirFlag(cmd)
	licencePath := cmd.String("licence", "-", "Path to a licence JSON document, or - for stdin")
	target := cmd.String("target", "", "Target policy version (default: current)")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	var lic policydiff.Licence
	if err := readJSON(*licencePath, &lic); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cat, err := e.catalogue(ctx, *dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	to, err := versionOrCurrent(cat, *target)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	diffs, err := e.inst.CompareLicence(ctx, cat, lic, to)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := writeJSON(stdout, diffs); err != nil {
		return 2
	}
	return 0
}
