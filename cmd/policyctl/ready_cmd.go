package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/readiness"
)

type readyReport struct {
	Ready      bool            `json:"ready"`
	Conditions map[string]bool `json:"conditions"`
}

// runReadyCmd implements `policyctl ready`.
//
// The input is a JSON array of condition instances, each with its own
// policy version. Exits 1 when any condition is missing data.
func runReadyCmd(ctx context.Context, e *env, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("ready", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	dir := dirFlag(cmd)
	input := cmd.String("input", "-", "Path to a JSON array of condition instances, or - for stdin")
	jsonOutput := cmd.Bool("json", false, "Output results as JSON")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	var instances []readiness.Instance
	if err := readJSON(*input, &instances); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cat, err := e.catalogue(ctx, *dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	ready, err := e.inst.CheckLicence(ctx, cat, instances)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	report := readyReport{Ready: readiness.AllReady(ready), Conditions: ready}

	if *jsonOutput {
		if err := writeJSON(stdout, report); err != nil {
			return 2
		}
	} else {
		codes := make([]string, 0, len(ready))
		for c := range ready {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, c := range codes {
			status := "ready"
			if !ready[c] {
				status = "missing data"
			}
			_, _ = fmt.Fprintf(stdout, "%s: %s\n", c, status)
		}
	}

	if !report.Ready {
		return 1
	}
	return 0
}
