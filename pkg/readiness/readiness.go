// Package readiness decides whether collected condition data is complete
// enough for a licence to be submitted.
package readiness

import (
	"fmt"
	"strings"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// Item pairs a template with the values collected for it.
type Item struct {
	Template policy.ConditionTemplate
	Values   []policy.FieldValue
}

// Instance is a condition recorded on a licence. Version is the policy
// version the condition was authored under, which may lag the licence's.
type Instance struct {
	Kind    policy.ConditionKind `json:"kind"`
	Code    string               `json:"code"`
	Version string               `json:"version"`
	Values  []policy.FieldValue  `json:"values"`
}

// IsReady reports whether a condition has the data it needs. Templates that
// take no input are always ready; otherwise at least one non-blank value must
// match a name anywhere in the input closure, including conditional inputs.
func IsReady(tmpl policy.ConditionTemplate, values []policy.FieldValue) bool {
	if !tmpl.RequiresInput {
		return true
	}
	names := make(map[string]bool)
	for _, n := range tmpl.InputNames() {
		names[n] = true
	}
	for _, v := range values {
		if names[v.FieldName] && strings.TrimSpace(v.Value) != "" {
			return true
		}
	}
	return false
}

// CheckAll evaluates each item and keys the result by template code. When a
// code repeats, it is ready only if every item with that code is ready.
func CheckAll(items []Item) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		record(out, it.Template.Code, IsReady(it.Template, it.Values))
	}
	return out
}

// CheckLicence resolves every instance against the template of its own
// recorded version and evaluates readiness. Unknown versions or codes are
// returned as errors rather than treated as ready.
func CheckLicence(cat *policy.Catalogue, instances []Instance) (map[string]bool, error) {
	out := make(map[string]bool, len(instances))
	for _, in := range instances {
		tmpl, err := cat.Condition(in.Kind, in.Version, in.Code)
		if err != nil {
			return nil, fmt.Errorf("readiness: %w", err)
		}
		record(out, in.Code, IsReady(tmpl, in.Values))
	}
	return out, nil
}

// AllReady reports whether every entry in a readiness map is true.
func AllReady(ready map[string]bool) bool {
	for _, ok := range ready {
		if !ok {
			return false
		}
	}
	return true
}

func record(out map[string]bool, code string, ready bool) {
	if prev, ok := out[code]; ok {
		out[code] = prev && ready
		return
	}
	out[code] = ready
}
