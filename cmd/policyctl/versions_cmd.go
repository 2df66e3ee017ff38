package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policyloader"
)

type versionInfo struct {
	Version     string `json:"version"`
	Document    string `json:"document"`
	Fingerprint string `json:"fingerprint"`
	AP          int    `json:"apConditions"`
	PSS         int    `json:"pssConditions"`
	Current     bool   `json:"current"`
}

// runVersionsCmd implements `policyctl versions`.
func runVersionsCmd(ctx context.Context, e *env, args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("versions", flag.ContinueOnError)
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
	loader := policyloader.NewLoader(src)
	cat, err := e.inst.Load(ctx, loader)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	current := ""
	if p := cat.Current(); p != nil {
		current = p.Version
	}

	out := []versionInfo{}
	for _, d := range loader.Documents() {
		out = append(out, versionInfo{
			Version:     d.Policy.Version,
			Document:    d.Name,
			Fingerprint: d.Fingerprint,
			AP:          len(d.Policy.Templates(policy.KindAP)),
			PSS:         len(d.Policy.Templates(policy.KindPSS)),
			Current:     d.Policy.Version == current,
		})
	}

	if *jsonOutput {
		if err := writeJSON(stdout, out); err != nil {
			return 2
		}
		return 0
	}
	for _, v := range out {
		marker := " "
		if v.Current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(stdout, "%s %-8s %-12s AP=%d PSS=%d %s\n", marker, v.Version, v.Document, v.AP, v.PSS, v.Fingerprint)
	}
	return 0
}
