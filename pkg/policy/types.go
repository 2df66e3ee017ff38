// Package policy holds the licence condition data model and the immutable,
// versioned catalogue of condition templates.
//
// A catalogue is built once at process start and shared read-only by the
// renderer, the readiness checker and the diff engine.
package policy

import "strings"

// ConditionKind discriminates the two pools of parameterised conditions.
type ConditionKind string

const (
	KindAP  ConditionKind = "AP"
	KindPSS ConditionKind = "PSS"
)

// Kinds lists every condition kind in evaluation order.
var Kinds = []ConditionKind{KindAP, KindPSS}

// LicenceKind describes which condition pools apply to a licence.
type LicenceKind string

const (
	LicenceAP    LicenceKind = "AP"
	LicencePSS   LicenceKind = "PSS"
	LicenceAPPSS LicenceKind = "AP_PSS"
)

// Includes reports whether conditions of kind k apply to a licence of kind l.
func (l LicenceKind) Includes(k ConditionKind) bool {
	switch l {
	case LicenceAP:
		return k == KindAP
	case LicencePSS:
		return k == KindPSS
	case LicenceAPPSS:
		return k == KindAP || k == KindPSS
	default:
		return false
	}
}

// InputType is the widget used to collect a value.
type InputType string

const (
	InputText       InputType = "TEXT"
	InputRadio      InputType = "RADIO"
	InputCheck      InputType = "CHECK"
	InputAddress    InputType = "ADDRESS"
	InputDatePicker InputType = "DATE_PICKER"
	InputTimePicker InputType = "TIME_PICKER"
	InputFileUpload InputType = "FILE_UPLOAD"
)

// Case is the transform applied to a value before substitution.
type Case string

const (
	CaseNone        Case = "NONE"
	CaseLower       Case = "LOWER"
	CaseCapitalised Case = "CAPITALISED"
)

// ListType governs how several values sharing one name are joined.
type ListType string

const (
	ListAnd ListType = "AND"
	ListOr  ListType = "OR"
)

// Conjunction returns the word placed before the final list item.
func (l ListType) Conjunction() string {
	if l == ListOr {
		return "or"
	}
	return "and"
}

// AddAnother is a UI hint for repeatable inputs. It has no rendering effect.
type AddAnother struct {
	Label string `yaml:"label" json:"label"`
}

// Field is the shape shared by top-level inputs and conditional inputs.
type Field struct {
	Name                    string      `yaml:"name" json:"name"`
	Label                   string      `yaml:"label" json:"label"`
	Type                    InputType   `yaml:"inputType" json:"inputType"`
	Case                    Case        `yaml:"case,omitempty" json:"case,omitempty"`
	ListType                ListType    `yaml:"listType,omitempty" json:"listType,omitempty"`
	IncludeBefore           string      `yaml:"includeBefore,omitempty" json:"includeBefore,omitempty"`
	HandleIndefiniteArticle bool        `yaml:"handleIndefiniteArticle,omitempty" json:"handleIndefiniteArticle,omitempty"`
	AddAnother              *AddAnother `yaml:"addAnother,omitempty" json:"addAnother,omitempty"`
	Subtext                 string      `yaml:"subtext,omitempty" json:"subtext,omitempty"`
}

// Input is one data-collection field on a template.
type Input struct {
	Field   `yaml:",inline" json:",inline"`
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`
}

// ConditionalInput is revealed when its parent option is selected.
type ConditionalInput struct {
	Field `yaml:",inline" json:",inline"`
}

// Conditional groups the inputs revealed by an option.
type Conditional struct {
	Inputs []ConditionalInput `yaml:"inputs" json:"inputs"`
}

// Option is a selectable value for RADIO and CHECK inputs.
type Option struct {
	Value       string       `yaml:"value" json:"value"`
	Conditional *Conditional `yaml:"conditional,omitempty" json:"conditional,omitempty"`
}

// Selected reports whether v selects this option.
func (o Option) Selected(v string) bool {
	return strings.TrimSpace(o.Value) == strings.TrimSpace(v)
}

// ConditionTemplate is one catalogue entry for a parameterised condition.
type ConditionTemplate struct {
	Code           string  `yaml:"code" json:"code"`
	Category       string  `yaml:"category" json:"category"`
	CategoryShort  string  `yaml:"categoryShort,omitempty" json:"categoryShort,omitempty"`
	RequiresInput  bool    `yaml:"requiresInput" json:"requiresInput"`
	StaticText     string  `yaml:"staticText" json:"staticText"`
	RenderTemplate string  `yaml:"renderTemplate,omitempty" json:"renderTemplate,omitempty"`
	Inputs         []Input `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Subtext        string  `yaml:"subtext,omitempty" json:"subtext,omitempty"`
	Type           string  `yaml:"type,omitempty" json:"type,omitempty"`
	Skippable      bool    `yaml:"skippable,omitempty" json:"skippable,omitempty"`
	PSSDates       bool    `yaml:"pssDates,omitempty" json:"pssDates,omitempty"`
}

// Fields returns every field in the template's input closure: each top-level
// input followed by the conditional inputs under its options, in declaration
// order. Names are not deduplicated.
func (t ConditionTemplate) Fields() []Field {
	var out []Field
	for _, in := range t.Inputs {
		out = append(out, in.Field)
		for _, opt := range in.Options {
			if opt.Conditional == nil {
				continue
			}
			for _, ci := range opt.Conditional.Inputs {
				out = append(out, ci.Field)
			}
		}
	}
	return out
}

// InputNames returns the distinct names of the input closure in declaration order.
func (t ConditionTemplate) InputNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range t.Fields() {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		names = append(names, f.Name)
	}
	return names
}

// StandardCondition is a fixed, non-parameterised condition.
type StandardCondition struct {
	Code string `yaml:"code" json:"code"`
	Text string `yaml:"text" json:"text"`
}

// FieldValue is one collected datum for a condition instance.
type FieldValue struct {
	FieldName string `yaml:"fieldName" json:"fieldName"`
	Value     string `yaml:"value" json:"value"`
	Sequence  int    `yaml:"sequenceIndex" json:"sequenceIndex"`
}

// HintMode records how a change hint's replacements should be read.
type HintMode string

const (
	// HintUnspecified leaves the classification to the diff engine.
	HintUnspecified HintMode = ""
	// HintReplacement marks dedicated successor conditions.
	HintReplacement HintMode = "REPLACEMENT"
	// HintSuggestion marks advisory alternatives that already stand on their own.
	HintSuggestion HintMode = "SUGGESTION"
)

// ChangeHint maps a code removed from a policy to its suggested replacements.
type ChangeHint struct {
	PreviousCode string   `yaml:"previousCode" json:"previousCode"`
	Replacements []string `yaml:"replacements" json:"replacements"`
	Mode         HintMode `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// StandardConditions groups fixed conditions by kind.
type StandardConditions struct {
	AP  []StandardCondition `yaml:"ap,omitempty" json:"ap,omitempty"`
	PSS []StandardCondition `yaml:"pss,omitempty" json:"pss,omitempty"`
}

// AdditionalConditions groups parameterised condition templates by kind.
type AdditionalConditions struct {
	AP  []ConditionTemplate `yaml:"ap,omitempty" json:"ap,omitempty"`
	PSS []ConditionTemplate `yaml:"pss,omitempty" json:"pss,omitempty"`
}

// Policy is the full definition of one policy version.
type Policy struct {
	Version              string               `yaml:"version" json:"version"`
	StandardConditions   StandardConditions   `yaml:"standardConditions" json:"standardConditions"`
	AdditionalConditions AdditionalConditions `yaml:"additionalConditions" json:"additionalConditions"`
	ChangeHints          []ChangeHint         `yaml:"changeHints,omitempty" json:"changeHints,omitempty"`
}

// Templates returns the condition templates of kind k.
func (p *Policy) Templates(k ConditionKind) []ConditionTemplate {
	switch k {
	case KindAP:
		return p.AdditionalConditions.AP
	case KindPSS:
		return p.AdditionalConditions.PSS
	default:
		return nil
	}
}

// Standard returns the standard conditions of kind k.
func (p *Policy) Standard(k ConditionKind) []StandardCondition {
	switch k {
	case KindAP:
		return p.StandardConditions.AP
	case KindPSS:
		return p.StandardConditions.PSS
	default:
		return nil
	}
}
