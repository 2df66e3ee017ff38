package policyloader

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/render"
)

// Severity grades a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a policy document.
type Issue struct {
	Severity Severity             `json:"severity"`
	Version  string               `json:"version"`
	Kind     policy.ConditionKind `json:"kind,omitempty"`
	Code     string               `json:"code,omitempty"`
	Message  string               `json:"message"`
}

func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", i.Severity, i.Version)
	if i.Kind != "" {
		fmt.Fprintf(&b, " %s", i.Kind)
	}
	if i.Code != "" {
		fmt.Fprintf(&b, " %s", i.Code)
	}
	fmt.Fprintf(&b, ": %s", i.Message)
	return b.String()
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Lint checks a decoded policy for authoring mistakes the schema cannot see.
// Errors make a version unrenderable; warnings flag likely slips.
func Lint(p *policy.Policy) []Issue {
	var issues []Issue
	report := func(sev Severity, k policy.ConditionKind, code, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: sev,
			Version:  p.Version,
			Kind:     k,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	known := make(map[string]bool)
	for _, k := range policy.Kinds {
		for _, t := range p.Templates(k) {
			known[t.Code] = true
		}
	}

	for _, k := range policy.Kinds {
		for _, t := range p.Templates(k) {
			lintTemplate(t, func(sev Severity, format string, args ...any) {
				report(sev, k, t.Code, format, args...)
			})
		}
	}

	for _, h := range p.ChangeHints {
		for _, r := range h.Replacements {
			if !known[r] {
				report(SeverityWarning, "", h.PreviousCode, "change hint replacement %q is not a condition in this version", r)
			}
		}
	}

	return issues
}

func lintTemplate(t policy.ConditionTemplate, report func(Severity, string, ...any)) {
	if _, err := uuid.Parse(t.Code); err != nil {
		report(SeverityWarning, "code is not a UUID")
	}

	if !t.RequiresInput {
		if t.RenderTemplate != "" {
			report(SeverityError, "renderTemplate set but requiresInput is false")
		}
		return
	}
	if t.RenderTemplate == "" {
		report(SeverityError, "requiresInput is true but renderTemplate is empty")
		return
	}

	names := make(map[string]bool)
	for _, n := range t.InputNames() {
		names[n] = true
	}

	referenced := make(map[string]bool)
	for _, n := range render.Parse(t.RenderTemplate).Placeholders() {
		referenced[n] = true
		if !names[n] {
			report(SeverityError, "placeholder {%s} has no matching input", n)
		}
	}
	for _, n := range t.InputNames() {
		if !referenced[n] {
			report(SeverityWarning, "input %q is never referenced by renderTemplate", n)
		}
	}

	for _, in := range t.Inputs {
		if (in.Type == policy.InputRadio || in.Type == policy.InputCheck) && len(in.Options) == 0 {
			report(SeverityWarning, "%s input %q has no options", in.Type, in.Name)
		}
	}

	top := make(map[string]bool, len(t.Inputs))
	for _, in := range t.Inputs {
		top[in.Name] = true
	}
	for _, in := range t.Inputs {
		for _, opt := range in.Options {
			if opt.Conditional == nil {
				continue
			}
			for _, ci := range opt.Conditional.Inputs {
				if top[ci.Name] {
					report(SeverityWarning, "conditional input %q under option %q duplicates a top-level input", ci.Name, opt.Value)
				}
			}
		}
	}
}
