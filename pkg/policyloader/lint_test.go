package policyloader

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

func input(name string, typ policy.InputType) policy.Input {
	return policy.Input{Field: policy.Field{Name: name, Label: name, Type: typ}}
}

func lintOne(t policy.ConditionTemplate, hints ...policy.ChangeHint) []Issue {
	return Lint(&policy.Policy{
		Version:              "2.1",
		AdditionalConditions: policy.AdditionalConditions{AP: []policy.ConditionTemplate{t}},
		ChangeHints:          hints,
	})
}

func TestLint_CleanTemplate(t *testing.T) {
	tmpl := policy.ConditionTemplate{
		Code:           uuid.NewString(),
		RequiresInput:  true,
		StaticText:     "Reside at an approved address.",
		RenderTemplate: "Reside at {address}.",
		Inputs:         []policy.Input{input("address", policy.InputAddress)},
	}
	assert.Empty(t, lintOne(tmpl))

	static := policy.ConditionTemplate{Code: uuid.NewString(), StaticText: "Fixed."}
	assert.Empty(t, lintOne(static))
}

func TestLint_Rules(t *testing.T) {
	code := uuid.NewString()

	radio := input("choice", policy.InputRadio)
	radio.Options = []policy.Option{{Value: "Yes", Conditional: &policy.Conditional{
		Inputs: []policy.ConditionalInput{{Field: policy.Field{Name: "choice", Type: policy.InputText}}},
	}}}

	tests := []struct {
		name     string
		tmpl     policy.ConditionTemplate
		severity Severity
		contains string
	}{
		{
			name:     "requiresInput without renderTemplate",
			tmpl:     policy.ConditionTemplate{Code: code, RequiresInput: true, Inputs: []policy.Input{input("a", policy.InputText)}},
			severity: SeverityError,
			contains: "renderTemplate is empty",
		},
		{
			name:     "renderTemplate without requiresInput",
			tmpl:     policy.ConditionTemplate{Code: code, RenderTemplate: "Text {a}"},
			severity: SeverityError,
			contains: "requiresInput is false",
		},
		{
			name:     "unknown placeholder",
			tmpl:     policy.ConditionTemplate{Code: code, RequiresInput: true, RenderTemplate: "At {a} or {b}", Inputs: []policy.Input{input("a", policy.InputText)}},
			severity: SeverityError,
			contains: "placeholder {b}",
		},
		{
			name:     "unreferenced input",
			tmpl:     policy.ConditionTemplate{Code: code, RequiresInput: true, RenderTemplate: "At {a}", Inputs: []policy.Input{input("a", policy.InputText), input("spare", policy.InputText)}},
			severity: SeverityWarning,
			contains: `input "spare"`,
		},
		{
			name:     "non-uuid code",
			tmpl:     policy.ConditionTemplate{Code: "residence", StaticText: "Fixed."},
			severity: SeverityWarning,
			contains: "not a UUID",
		},
		{
			name:     "radio without options",
			tmpl:     policy.ConditionTemplate{Code: code, RequiresInput: true, RenderTemplate: "{r}", Inputs: []policy.Input{input("r", policy.InputRadio)}},
			severity: SeverityWarning,
			contains: "has no options",
		},
		{
			name:     "conditional duplicates sibling",
			tmpl:     policy.ConditionTemplate{Code: code, RequiresInput: true, RenderTemplate: "{choice}", Inputs: []policy.Input{radio}},
			severity: SeverityWarning,
			contains: "duplicates a top-level input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := lintOne(tt.tmpl)
			require.Len(t, issues, 1, "%v", issues)
			assert.Equal(t, tt.severity, issues[0].Severity)
			assert.Contains(t, issues[0].Message, tt.contains)
			assert.Equal(t, tt.tmpl.Code, issues[0].Code)
			assert.Equal(t, policy.KindAP, issues[0].Kind)
			assert.Equal(t, "2.1", issues[0].Version)
		})
	}
}

func TestLint_FallbackMembersChecked(t *testing.T) {
	tmpl := policy.ConditionTemplate{
		Code:           uuid.NewString(),
		RequiresInput:  true,
		RenderTemplate: "Report to {officer || team}",
		Inputs:         []policy.Input{input("officer", policy.InputText)},
	}
	issues := lintOne(tmpl)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "{team}")
}

func TestLint_ChangeHints(t *testing.T) {
	code := uuid.NewString()
	tmpl := policy.ConditionTemplate{Code: code, StaticText: "Fixed."}

	assert.Empty(t, lintOne(tmpl, policy.ChangeHint{PreviousCode: "old", Replacements: []string{code}}))

	issues := lintOne(tmpl, policy.ChangeHint{PreviousCode: "old", Replacements: []string{"missing"}})
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, "old", issues[0].Code)
	assert.Contains(t, issues[0].Message, `"missing"`)
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Issue{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}))
}

func TestIssue_String(t *testing.T) {
	i := Issue{Severity: SeverityError, Version: "2.1", Kind: policy.KindPSS, Code: "abc", Message: "broken"}
	assert.Equal(t, "error: 2.1 PSS abc: broken", i.String())
	assert.Equal(t, "warning: 2.1: odd", Issue{Severity: SeverityWarning, Version: "2.1", Message: "odd"}.String())
}
