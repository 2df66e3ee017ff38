package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policyloader"
)

type lintDocument struct {
	Name        string               `json:"name"`
	Version     string               `json:"version,omitempty"`
	Fingerprint string               `json:"fingerprint,omitempty"`
	Error       string               `json:"error,omitempty"`
	Issues      []policyloader.Issue `json:"issues"`
}

type lintReport struct {
	Passed    bool           `json:"passed"`
	Documents []lintDocument `json:"documents"`
	Catalogue string         `json:"catalogueError,omitempty"`
}

// runLintCmd implements `policyctl lint`.
//
// Every document is checked even after a failure so one run reports all
// problems. Warnings never fail the run.
func runLintCmd(ctx context.Context, e *env, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("lint", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	dir := dirFlag(cmd)
	jsonOutput := cmd.Bool("json", false, "Output results as JSON")
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	src, err := e.source(ctx, *dir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	names, err := src.List(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	loader := policyloader.NewLoader(src)
	report := lintReport{Passed: true, Documents: []lintDocument{}}
	var policies []*policy.Policy

	for _, name := range names {
		ld := lintDocument{Name: name, Issues: []policyloader.Issue{}}
		doc, err := loader.LoadDocument(ctx, name)
		if err != nil {
			ld.Error = err.Error()
			report.Passed = false
		} else {
			ld.Version = doc.Policy.Version
			ld.Fingerprint = doc.Fingerprint
			if doc.Issues != nil {
				ld.Issues = doc.Issues
			}
			if policyloader.HasErrors(doc.Issues) {
				report.Passed = false
			}
			policies = append(policies, doc.Policy)
		}
		report.Documents = append(report.Documents, ld)
	}

	if _, err := policy.NewCatalogue(policies...); err != nil {
		report.Catalogue = err.Error()
		report.Passed = false
	}

	if *jsonOutput {
		if err := writeJSON(stdout, report); err != nil {
			return 2
		}
	} else {
		printLintReport(stdout, report)
	}

	if !report.Passed {
		return 1
	}
	return 0
}

func printLintReport(w io.Writer, r lintReport) {
	for _, d := range r.Documents {
		switch {
		case d.Error != "":
			_, _ = fmt.Fprintf(w, "FAIL %s: %s\n", d.Name, d.Error)
		case policyloader.HasErrors(d.Issues):
			_, _ = fmt.Fprintf(w, "FAIL %s (version %s)\n", d.Name, d.Version)
		default:
			_, _ = fmt.Fprintf(w, "ok   %s (version %s)\n", d.Name, d.Version)
		}
		for _, i := range d.Issues {
			_, _ = fmt.Fprintf(w, "     %s\n", i)
		}
	}
	if r.Catalogue != "" {
		_, _ = fmt.Fprintf(w, "FAIL catalogue: %s\n", r.Catalogue)
	}
	if r.Passed {
		_, _ = fmt.Fprintf(w, "%d document(s) passed\n", len(r.Documents))
	}
}
