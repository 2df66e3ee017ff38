package render

import (
	"sort"
	"strings"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// Condition renders tmpl with values. Templates that take no input, or have
// no render template, return their static text verbatim.
func Condition(tmpl policy.ConditionTemplate, values []policy.FieldValue) string {
	if !tmpl.RequiresInput || tmpl.RenderTemplate == "" {
		return tmpl.StaticText
	}
	return Parse(tmpl.RenderTemplate).Render(tmpl, values)
}

// FromCatalogue looks up the template for code in version and renders it.
// Unknown versions or codes return the catalogue's not-found error.
func FromCatalogue(cat *policy.Catalogue, kind policy.ConditionKind, version, code string, values []policy.FieldValue) (string, error) {
	tmpl, err := cat.Condition(kind, version, code)
	if err != nil {
		return "", err
	}
	return Condition(tmpl, values), nil
}

// Render substitutes values into t using the input definitions of tmpl.
func (t Template) Render(tmpl policy.ConditionTemplate, values []policy.FieldValue) string {
	byName := groupValues(values)
	fields := revealedFields(tmpl, byName)

	pieces := make([]string, len(t))
	for i, seg := range t {
		if seg.Kind == SegmentLiteral {
			pieces[i] = seg.Text
			continue
		}

		name := pick(seg.Names, byName)
		f, ok := fields[name]
		if !ok {
			continue
		}
		text := formatField(f, byName[name])
		if text == "" {
			continue
		}
		pieces[i] = text

		if f.HandleIndefiniteArticle && i > 0 && t[i-1].Kind == SegmentLiteral {
			pieces[i-1] = FixArticle(pieces[i-1], text)
		}
	}
	return strings.Join(pieces, "")
}

// groupValues buckets non-blank values by field name, ordered by sequence.
func groupValues(values []policy.FieldValue) map[string][]policy.FieldValue {
	out := make(map[string][]policy.FieldValue)
	for _, v := range values {
		if strings.TrimSpace(v.Value) == "" {
			continue
		}
		out[v.FieldName] = append(out[v.FieldName], v)
	}
	for _, vs := range out {
		sort.SliceStable(vs, func(i, j int) bool { return vs[i].Sequence < vs[j].Sequence })
	}
	return out
}

// revealedFields maps placeholder names to their definitions: every top-level
// input, plus the conditional inputs of any selected option.
func revealedFields(tmpl policy.ConditionTemplate, byName map[string][]policy.FieldValue) map[string]policy.Field {
	fields := make(map[string]policy.Field)
	for _, in := range tmpl.Inputs {
		if _, ok := fields[in.Name]; !ok {
			fields[in.Name] = in.Field
		}
	}
	for _, in := range tmpl.Inputs {
		for _, opt := range in.Options {
			if opt.Conditional == nil || !selected(opt, byName[in.Name]) {
				continue
			}
			for _, ci := range opt.Conditional.Inputs {
				if _, ok := fields[ci.Name]; !ok {
					fields[ci.Name] = ci.Field
				}
			}
		}
	}
	return fields
}

func selected(opt policy.Option, values []policy.FieldValue) bool {
	for _, v := range values {
		if opt.Selected(v.Value) {
			return true
		}
	}
	return false
}

// pick returns the first name in a fallback chain that has a value, or the
// last name when none do.
func pick(names []string, byName map[string][]policy.FieldValue) string {
	for _, n := range names {
		if len(byName[n]) > 0 {
			return n
		}
	}
	return names[len(names)-1]
}

func formatField(f policy.Field, values []policy.FieldValue) string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		s := v.Value
		if f.Type == policy.InputAddress {
			s = CompactAddress(s)
		}
		if s == "" {
			continue
		}
		items = append(items, ApplyCase(s, f.Case))
	}
	if len(items) == 0 {
		return ""
	}

	lt := f.ListType
	if lt == "" {
		lt = policy.ListAnd
	}
	return f.IncludeBefore + JoinList(items, lt)
}
