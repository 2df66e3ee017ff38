package policydiff

import (
	"errors"
	"fmt"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// ErrDowngrade is returned when a licence is compared against a policy
// version older than its own. Change hints only describe forward moves.
var ErrDowngrade = errors.New("target policy version is older than the licence's")

// Diff classifies each licence condition authored under previous against
// current. Unchanged conditions are omitted; the result follows licence
// order and holds at most one entry per code. Diff is a no-op when the two
// slices share a version ("2.1" and "2.1.0" are the same) or previous has no
// version.
func Diff(conditions []LicenceCondition, previous, current policy.Slice, hints []policy.ChangeHint) []ConditionDiff {
	out := []ConditionDiff{}
	if previous.Version == "" || sameVersion(previous.Version, current.Version) {
		return out
	}

	index := indexHints(hints)
	seen := make(map[string]bool, len(conditions))

	for _, lc := range conditions {
		if seen[lc.Code] {
			continue
		}
		seen[lc.Code] = true

		prev, ok := previous.Lookup(lc.Code)
		if !ok {
			// Not authored under previous: nothing to reconcile.
			continue
		}

		var d *ConditionDiff
		if cur, ok := current.Lookup(lc.Code); ok {
			d = compareTemplates(prev, cur)
		} else {
			d = classifyRemoved(prev, previous, current, index)
		}
		if d == nil {
			continue
		}
		d.Kind = current.Kind
		d.Code = lc.Code
		d.Sequence = lc.Sequence
		out = append(out, *d)
	}
	return out
}

// CompareLicence diffs a licence's AP then PSS conditions against target,
// using every change hint published after the licence's version. It is a
// no-op when the licence has no version or is already on target, and fails
// with ErrDowngrade when target is older than the licence's version.
func CompareLicence(cat *policy.Catalogue, lic Licence, target string) ([]ConditionDiff, error) {
	out := []ConditionDiff{}
	if lic.Version == "" {
		return out, nil
	}
	cmp, err := policy.CompareVersions(lic.Version, target)
	if err != nil {
		return nil, fmt.Errorf("policydiff: %w", err)
	}
	if cmp == 0 {
		return out, nil
	}
	if cmp > 0 {
		return nil, fmt.Errorf("policydiff: %s to %s: %w", lic.Version, target, ErrDowngrade)
	}

	hints, err := cat.HintsBetween(lic.Version, target)
	if err != nil {
		return nil, fmt.Errorf("policydiff: %w", err)
	}

	for _, k := range policy.Kinds {
		if !lic.Kind.Includes(k) {
			continue
		}
		previous, err := cat.Slice(lic.Version, k)
		if err != nil {
			return nil, fmt.Errorf("policydiff: %w", err)
		}
		current, err := cat.Slice(target, k)
		if err != nil {
			return nil, fmt.Errorf("policydiff: %w", err)
		}
		out = append(out, Diff(lic.Conditions(k), previous, current, hints)...)
	}
	return out, nil
}

func compareTemplates(prev, cur policy.ConditionTemplate) *ConditionDiff {
	prevNames := prev.InputNames()
	curNames := cur.InputNames()
	added := difference(curNames, prevNames)
	removed := difference(prevNames, curNames)

	var ct ChangeType
	switch {
	case len(added) > 0:
		ct = NewOptions
	case len(removed) > 0 || prev.StaticText != cur.StaticText:
		ct = TextChange
	default:
		return nil
	}

	currentText := cur.StaticText
	return &ConditionDiff{
		ChangeType:        ct,
		PreviousText:      prev.StaticText,
		CurrentText:       &currentText,
		AddedInputNames:   added,
		RemovedInputNames: removed,
		Suggestions:       []Suggestion{},
	}
}

func classifyRemoved(prev policy.ConditionTemplate, previous, current policy.Slice, index hintIndex) *ConditionDiff {
	d := &ConditionDiff{
		PreviousText:      prev.StaticText,
		AddedInputNames:   []string{},
		RemovedInputNames: []string{},
		Suggestions:       []Suggestion{},
	}

	codes, mode := index.resolve(prev.Code, current)
	if len(codes) == 0 {
		d.ChangeType = RemovedNoReplacements
		return d
	}

	for _, code := range codes {
		t, _ := current.Lookup(code)
		d.Suggestions = append(d.Suggestions, Suggestion{Code: code, CurrentText: t.StaticText})
	}

	switch mode {
	case policy.HintReplacement:
		d.ChangeType = Replaced
	case policy.HintSuggestion:
		d.ChangeType = Deleted
	default:
		d.ChangeType = Deleted
		for _, code := range codes {
			if !previous.Has(code) {
				d.ChangeType = Replaced
				break
			}
		}
	}
	return d
}

// sameVersion compares versions semantically, falling back to exact string
// equality for labels that do not parse.
func sameVersion(a, b string) bool {
	cmp, err := policy.CompareVersions(a, b)
	if err != nil {
		return a == b
	}
	return cmp == 0
}

// difference returns the names in a that are not in b, in a's order.
func difference(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, n := range b {
		in[n] = true
	}
	out := []string{}
	for _, n := range a {
		if !in[n] {
			out = append(out, n)
		}
	}
	return out
}
