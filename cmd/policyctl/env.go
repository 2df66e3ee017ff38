package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/catalogsource"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/config"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/observability"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policyloader"
)

// env carries process-wide state shared by subcommands.
type env struct {
	cfg      *config.Config
	provider *observability.Provider
	inst     *observability.Instruments
}

func newEnv(ctx context.Context, cfg *config.Config) (*env, error) {
	p, err := observability.New(ctx, observability.ConfigFrom(cfg.OTel))
	if err != nil {
		return nil, err
	}
	inst, err := observability.NewInstruments(p)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, provider: p, inst: inst}, nil
}

func (e *env) close(ctx context.Context) {
	_ = e.provider.Shutdown(ctx)
}

// source returns a filesystem source for dir, or the configured source
// when dir is empty.
func (e *env) source(ctx context.Context, dir string) (catalogsource.Source, error) {
	if dir != "" {
		return catalogsource.NewFileSource(dir)
	}
	return catalogsource.NewSource(ctx, e.cfg.Source)
}

// catalogue loads the full catalogue through the instrumented loader.
func (e *env) catalogue(ctx context.Context, dir string) (*policy.Catalogue, error) {
	src, err := e.source(ctx, dir)
	if err != nil {
		return nil, err
	}
	return e.inst.Load(ctx, policyloader.NewLoader(src))
}

// versionOrCurrent returns v, or the newest catalogue version when v is empty.
func versionOrCurrent(cat *policy.Catalogue, v string) (string, error) {
	if v != "" {
		return v, nil
	}
	cur := cat.Current()
	if cur == nil {
		return "", errors.New("catalogue has no policy versions")
	}
	return cur.Version, nil
}

// dirFlag registers the shared --dir flag.
func dirFlag(cmd *flag.FlagSet) *string {
	return cmd.String("dir", "", "Read policy documents from this directory instead of the configured source")
}

// readJSON decodes path into v. A path of "-" reads standard input.
func readJSON(path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path) //nolint:gosec // operator-supplied path
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
