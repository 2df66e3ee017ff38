// Package policyloader reads versioned licence policy documents from a
// catalogue source, validates and lints them, and assembles the immutable
// policy catalogue.
package policyloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/catalogsource"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// ErrLintFailed is matched by errors from LoadAll when a document has
// error-severity lint issues.
var ErrLintFailed = errors.New("policy lint failed")

// LintError carries the issues that stopped a load.
type LintError struct {
	Issues []Issue
}

func (e *LintError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		if i.Severity == SeverityError {
			msgs = append(msgs, i.String())
		}
	}
	return fmt.Sprintf("%s: %s", ErrLintFailed, strings.Join(msgs, "; "))
}

func (e *LintError) Is(target error) bool {
	return target == ErrLintFailed
}

// Document is one loaded policy version.
type Document struct {
	Name        string
	Policy      *policy.Policy
	Fingerprint string
	Issues      []Issue
}

// Loader loads policy documents and builds catalogues from them.
type Loader struct {
	mu        sync.RWMutex
	src       catalogsource.Source
	documents map[string]*Document // version -> document
	catalogue *policy.Catalogue
	onReload  func(cat *policy.Catalogue)
	logger    *slog.Logger
}

// NewLoader creates a loader reading from src.
func NewLoader(src catalogsource.Source) *Loader {
	return &Loader{
		src:       src,
		documents: make(map[string]*Document),
		logger:    slog.Default().With("component", "policyloader"),
	}
}

// OnReload registers a callback invoked after each successful LoadAll.
func (l *Loader) OnReload(fn func(cat *policy.Catalogue)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onReload = fn
}

// LoadAll reads every document from the source and builds a fresh
// catalogue. Nothing is replaced unless every document parses, passes lint
// and the resulting catalogue is consistent.
func (l *Loader) LoadAll(ctx context.Context) (*policy.Catalogue, error) {
	names, err := l.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("policyloader: list: %w", err)
	}

	docs := make(map[string]*Document, len(names))
	policies := make([]*policy.Policy, 0, len(names))
	var failed []Issue

	for _, name := range names {
		doc, err := l.LoadDocument(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("policyloader: load %s: %w", name, err)
		}
		if prev, ok := docs[doc.Policy.Version]; ok {
			return nil, fmt.Errorf("policyloader: %s and %s both define version %s: %w",
				prev.Name, name, doc.Policy.Version, policy.ErrDuplicateVersion)
		}
		docs[doc.Policy.Version] = doc
		policies = append(policies, doc.Policy)

		for _, i := range doc.Issues {
			if i.Severity == SeverityError {
				failed = append(failed, i)
				continue
			}
			l.logger.WarnContext(ctx, "policy lint warning",
				"document", name,
				"version", i.Version,
				"kind", i.Kind,
				"code", i.Code,
				"message", i.Message,
			)
		}
	}

	if len(failed) > 0 {
		return nil, &LintError{Issues: failed}
	}

	cat, err := policy.NewCatalogue(policies...)
	if err != nil {
		return nil, fmt.Errorf("policyloader: %w", err)
	}

	l.mu.Lock()
	l.documents = docs
	l.catalogue = cat
	callback := l.onReload
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "policy catalogue loaded",
		"versions", cat.Versions(),
	)

	if callback != nil {
		callback(cat)
	}
	return cat, nil
}

// LoadDocument reads, decodes, fingerprints and lints a single document
// without touching the loader's current catalogue.
func (l *Loader) LoadDocument(ctx context.Context, name string) (*Document, error) {
	data, err := l.src.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	p, err := Decode(name, data)
	if err != nil {
		return nil, err
	}

	fp, err := Fingerprint(p)
	if err != nil {
		return nil, err
	}

	return &Document{
		Name:        name,
		Policy:      p,
		Fingerprint: fp,
		Issues:      Lint(p),
	}, nil
}

// Catalogue returns the catalogue built by the last successful LoadAll, or
// nil if none has succeeded.
func (l *Loader) Catalogue() *policy.Catalogue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalogue
}

// Document returns the loaded document for version.
func (l *Loader) Document(version string) (*Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.documents[version]
	return d, ok
}

// Documents returns every loaded document in ascending version order.
func (l *Loader) Documents() []*Document {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Document, 0, len(l.documents))
	for _, d := range l.documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		c, err := policy.CompareVersions(out[i].Policy.Version, out[j].Policy.Version)
		if err != nil {
			return out[i].Policy.Version < out[j].Policy.Version
		}
		return c < 0
	})
	return out
}
