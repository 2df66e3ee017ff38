//go:build property
// +build property

package policydiff

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

func templatesFrom(codes []string, text string) []policy.ConditionTemplate {
	seen := make(map[string]bool)
	var out []policy.ConditionTemplate
	for _, c := range codes {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, cond(c, text+c, "value"))
	}
	return out
}

// Property: Diff(codes, v, v) == []
func TestDiffSameVersionEmpty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("identical versions produce no changes", prop.ForAll(
		func(codes []string, text string) bool {
			s := slice("2.1", templatesFrom(codes, text)...)
			return len(Diff(FromCodes(codes), s, s, nil)) == 0
		},
		gen.SliceOf(gen.Identifier()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: identical content under different version labels produces no changes.
func TestDiffIdenticalContentEmpty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("unchanged conditions are omitted", prop.ForAll(
		func(codes []string, text string) bool {
			prev := slice("2.1", templatesFrom(codes, text)...)
			cur := slice("3.0", templatesFrom(codes, text)...)
			return len(Diff(FromCodes(codes), prev, cur, nil)) == 0
		},
		gen.SliceOf(gen.Identifier()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: each removed code yields exactly one diff, in licence order.
func TestDiffRemovedAllReported(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("removed codes are reported once each", prop.ForAll(
		func(codes []string) bool {
			prevTemplates := templatesFrom(codes, "t")
			got := Diff(FromCodes(codes), slice("2.1", prevTemplates...), slice("3.0"), nil)
			if len(got) != len(prevTemplates) {
				return false
			}
			for i, d := range got {
				if d.Code != prevTemplates[i].Code || d.ChangeType != RemovedNoReplacements {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
