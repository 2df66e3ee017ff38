package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// runRenderCmd implements `policyctl render`.
//
// Values are a JSON array of {"fieldName", "value", "sequenceIndex"}
// objects. With no --values flag the condition renders with no data.
func runRenderCmd(ctx context.Context, e *env, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("render", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	dir := dirFlag(cmd)

	var kind, version, code, valuesPath string
	cmd.StringVar(&kind, "kind", string(policy.KindAP), "Condition kind: AP or PSS")
	cmd.StringVar(&version, "version", "", "Policy version (default: current)")
	cmd.StringVar(&code, "code", "", "Condition code (REQUIRED)")
	cmd.StringVar(&valuesPath, "values", "", "Path to a JSON array of field values, or - for stdin")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	if code == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --code is required")
		return 2
	}
	k := policy.ConditionKind(kind)
	if k != policy.KindAP && k != policy.KindPSS {
		_, _ = fmt.Fprintf(stderr, "Error: --kind must be AP or PSS, got %q\n", kind)
		return 2
	}

	var values []policy.FieldValue
	if valuesPath != "" {
		if err := readJSON(valuesPath, &values); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	cat, err := e.catalogue(ctx, *dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if version, err = versionOrCurrent(cat, version); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	text, err := e.inst.Render(ctx, cat, k, version, code, values)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	_, _ = fmt.Fprintln(stdout, text)
	return 0
}
